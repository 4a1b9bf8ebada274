package http

import (
	"net/http"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type VerificationHandler struct {
	verifSvc service.VerificationService
}

func NewVerificationHandler(verifSvc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifSvc: verifSvc}
}

// PendingQueue lists the join requests the caller may vouch for,
// oldest first.
func (h *VerificationHandler) PendingQueue(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	queue, err := h.verifSvc.PendingQueue(r.Context(), actor.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queue)
}

type vouchRequest struct {
	RequesterID int32 `json:"requester_id"`
	ChurchID    int32 `json:"church_id"`
}

func (h *VerificationHandler) Vouch(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req vouchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.RequesterID <= 0 || req.ChurchID <= 0 {
		writeError(w, domain.Validation("requester_id and church_id are required"))
		return
	}

	progress, err := h.verifSvc.Vouch(r.Context(), actor.ID, req.RequesterID, req.ChurchID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// Progress reports the caller's own verification progress at a church.
func (h *VerificationHandler) Progress(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	churchID := queryInt32(r, "church_id", 0)
	if churchID == 0 {
		writeError(w, domain.Validation("church_id query parameter is required"))
		return
	}

	progress, err := h.verifSvc.Progress(r.Context(), actor.ID, churchID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

type rejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *VerificationHandler) Reject(w http.ResponseWriter, r *http.Request) {
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
	var req rejectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.verifSvc.RejectRequest(r.Context(), actor, id, req.Reason); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
