package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type InviteCodeHandler struct {
	codeSvc service.InviteCodeService
}

func NewInviteCodeHandler(codeSvc service.InviteCodeService) *InviteCodeHandler {
	return &InviteCodeHandler{codeSvc: codeSvc}
}

// Mine returns the caller's current referral code, creating one when
// needed.
func (h *InviteCodeHandler) Mine(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	code, err := h.codeSvc.GetOrCreate(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, code)
}

// Scan records one scan of a shared code. Public: scans happen before
// the scanner has an account.
func (h *InviteCodeHandler) Scan(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		writeError(w, domain.Validation("invite code is required"))
		return
	}
	updated, err := h.codeSvc.Scan(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *InviteCodeHandler) Expire(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.codeSvc.Expire(r.Context(), actor.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
