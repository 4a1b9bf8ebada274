package http

import (
	"context"
	"net/http"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

type ItemHandler struct {
	itemSvc service.ItemService
}

func NewItemHandler(itemSvc service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

type addItemRequest struct {
	ChurchID       int32  `json:"church_id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`
	OfferToMembers bool   `json:"offer_to_members,omitempty"`
}

func (h *ItemHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item := &domain.Item{
		ChurchID:       req.ChurchID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		OfferToMembers: req.OfferToMembers,
	}
	if err := h.itemSvc.AddItem(r.Context(), actor.ID, item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := h.itemSvc.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type itemListResponse struct {
	Items []domain.Item `json:"items"`
	Total int32         `json:"total"`
}

func (h *ItemHandler) ListByChurch(w http.ResponseWriter, r *http.Request) {
	churchID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	items, total, err := h.itemSvc.ListChurchItems(r.Context(), churchID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemListResponse{Items: items, Total: total})
}

func (h *ItemHandler) Claim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.itemSvc.ClaimItem)
}

func (h *ItemHandler) Unclaim(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.itemSvc.UnclaimItem)
}

func (h *ItemHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.itemSvc.CompleteItem)
}

func (h *ItemHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actorID, itemID int32) (*domain.Item, error)) {
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

	item, err := op(r.Context(), actor.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type offerRequest struct {
	Offer bool `json:"offer"`
}

type offerResponse struct {
	Item            *domain.Item `json:"item"`
	AffectedMembers []string     `json:"affected_members,omitempty"`
}

func (h *ItemHandler) SetOffer(w http.ResponseWriter, r *http.Request) {
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
	var req offerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, affected, err := h.itemSvc.SetOfferToMembers(r.Context(), actor.ID, id, req.Offer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerResponse{Item: item, AffectedMembers: affected})
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.itemSvc.DeleteItem(r.Context(), actor, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type itemRequestBody struct {
	Note string `json:"note,omitempty"`
}

// Request files a member's request for an internally offered item.
func (h *ItemHandler) Request(w http.ResponseWriter, r *http.Request) {
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
	var req itemRequestBody
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.itemSvc.RequestItem(r.Context(), actor.ID, id, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) MarkRequestReceived(w http.ResponseWriter, r *http.Request) {
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

	req, err := h.itemSvc.MarkRequestReceived(r.Context(), actor.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *ItemHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
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
	if err := h.itemSvc.CancelRequest(r.Context(), actor.ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
