package http

import (
	"net/http"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type profileResponse struct {
	User   *domain.User   `json:"user"`
	Church *domain.Church `json:"church,omitempty"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	user, church, err := h.userSvc.GetProfile(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{User: user, Church: church})
}

type updateProfileRequest struct {
	Name        string `json:"name,omitempty"`
	DeviceToken string `json:"device_token,omitempty"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.userSvc.UpdateProfile(r.Context(), actor.ID, req.Name, req.DeviceToken); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
