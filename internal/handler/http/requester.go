package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/auth"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

// requesterFromRequest rebuilds the authenticated caller from the
// verified JWT claims. Services receive this value and never touch the
// token themselves.
func requesterFromRequest(r *http.Request) (identity.Requester, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return identity.Requester{}, auth.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	companyID, _ := claims["company_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || companyID == "" || role == "" {
		return identity.Requester{}, auth.ErrInvalidToken
	}

	employeeID, _ := claims["employee_id"].(string)

	return identity.Requester{
		UserID:     userID,
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Role:       identity.Role(role),
	}, nil
}
