package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type InvitationHandler struct {
	invSvc service.InvitationService
}

func NewInvitationHandler(invSvc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invSvc: invSvc}
}

type inviteChurchRequest struct {
	Email      string `json:"email"`
	ChurchName string `json:"church_name"`
}

func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req inviteChurchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	inv, err := h.invSvc.InviteChurch(r.Context(), actor, req.Email, req.ChurchName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *InvitationHandler) Resend(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	inv, err := h.invSvc.ResendInvitation(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvitationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.invSvc.CancelInvitation(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *InvitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	inv, err := h.invSvc.GetInvitation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// LookupByToken resolves an invitation for the registration page. This
// endpoint is public; the token itself is the credential.
func (h *InvitationHandler) LookupByToken(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		writeError(w, domain.Validation("invitation token is required"))
		return
	}
	inv, err := h.invSvc.LookupByToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvitationHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	analytics, err := h.invSvc.GetAnalytics(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
