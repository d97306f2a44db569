package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	gocache "github.com/patrickmn/go-cache"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/identity"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role identity.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	// Revoked tokens live here until their own exp would have passed;
	// the cache evicts them on its sweep interval.
	revokedTokens *gocache.Cache
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             gocache.New(12*time.Hour, 30*time.Minute),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role identity.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": j.returnValueOrNil(employeeID),
		"company_id":  companyID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// RevokeToken marks a token as revoked until its expiry would have
// passed anyway.
func (j *JWTService) RevokeToken(token string) {
	remaining := 12 * time.Hour
	if expDuration, err := time.ParseDuration(j.accessTokenExpirationTime); err == nil {
		remaining = expDuration
	}
	j.revokedTokens.Set(token, true, remaining)
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	_, revoked := j.revokedTokens.Get(token)
	return revoked
}

func (j *JWTService) returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
