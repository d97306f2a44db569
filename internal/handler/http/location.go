package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/domain/location"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/handler/http/response"
)

type LocationHandler struct {
	locationService location.LocationService
}

func NewLocationHandler(locationService location.LocationService) LocationHandler {
	return LocationHandler{locationService: locationService}
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req location.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.locationService.CreateLocation(r.Context(), requester, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Location created", resp)
}

func (h *LocationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.locationService.GetLocation(r.Context(), requester, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.locationService.ListLocations(r.Context(), requester)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req location.UpdateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.locationService.UpdateLocation(r.Context(), requester, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location updated", resp)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester, err := requesterFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.locationService.DeleteLocation(r.Context(), requester, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Location deleted", nil)
}
