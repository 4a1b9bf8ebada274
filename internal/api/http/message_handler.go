package http

import (
	"net/http"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type MessageHandler struct {
	msgSvc service.MessageService
}

func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

type createMessageRequest struct {
	Title        string     `json:"title"`
	Body         string     `json:"body,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	churchID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req createMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.msgSvc.CreateMessage(r.Context(), actor.ID, churchID, req.Title, req.Body, req.ScheduledFor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type createShareRequest struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// CreateShare publishes a member post immediately.
func (h *MessageHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	churchID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req createShareRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.msgSvc.CreateUserShare(r.Context(), actor.ID, churchID, req.Title, req.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *MessageHandler) Publish(w http.ResponseWriter, r *http.Request) {
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

	msg, err := h.msgSvc.PublishMessage(r.Context(), actor.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (h *MessageHandler) Archive(w http.ResponseWriter, r *http.Request) {
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
	if err := h.msgSvc.ArchiveMessage(r.Context(), actor.ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.msgSvc.DeleteMessage(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.msgSvc.GetMessage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

type messageListResponse struct {
	Messages []domain.Message `json:"messages"`
	Total    int32            `json:"total"`
}

func (h *MessageHandler) ListByChurch(w http.ResponseWriter, r *http.Request) {
	churchID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	msgs, total, err := h.msgSvc.ListChurchMessages(r.Context(), churchID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageListResponse{Messages: msgs, Total: total})
}
