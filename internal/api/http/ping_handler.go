package http

import (
	"context"
	"net/http"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type PingHandler struct {
	pingSvc service.PingService
}

func NewPingHandler(pingSvc service.PingService) *PingHandler {
	return &PingHandler{pingSvc: pingSvc}
}

type sendPingRequest struct {
	ReceiverID int32  `json:"receiver_id"`
	Message    string `json:"message,omitempty"`
}

func (h *PingHandler) Send(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req sendPingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ReceiverID <= 0 {
		writeError(w, domain.Validation("receiver_id is required"))
		return
	}

	ping, err := h.pingSvc.SendPing(r.Context(), actor.ID, req.ReceiverID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ping)
}

func (h *PingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, h.pingSvc.AcceptPing)
}

func (h *PingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, h.pingSvc.RejectPing)
}

func (h *PingHandler) answer(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, receiverID, pingID int32) (*domain.Ping, error)) {
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

	ping, err := op(r.Context(), actor.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ping)
}

func (h *PingHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	ping, err := h.pingSvc.GetPing(r.Context(), actor.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ping)
}
