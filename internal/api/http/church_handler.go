package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/service"
)

// pathID parses the named path variable as an int32 ID.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validation("invalid %s: %q", name, raw)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

type ChurchHandler struct {
	churchSvc service.ChurchService
	verifSvc  service.VerificationService
}

func NewChurchHandler(churchSvc service.ChurchService, verifSvc service.VerificationService) *ChurchHandler {
	return &ChurchHandler{churchSvc: churchSvc, verifSvc: verifSvc}
}

type registerChurchRequest struct {
	InvitationToken          string  `json:"invitation_token,omitempty"`
	Name                     string  `json:"name"`
	Description              string  `json:"description,omitempty"`
	Address                  string  `json:"address,omitempty"`
	Latitude                 float64 `json:"latitude,omitempty"`
	Longitude                float64 `json:"longitude,omitempty"`
	RequiresVerification     *bool   `json:"requires_verification,omitempty"`
	MinVerificationsRequired int32   `json:"min_verifications_required,omitempty"`
}

func (h *ChurchHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req registerChurchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	church := &domain.Church{
		Name:                     req.Name,
		Description:              req.Description,
		Address:                  req.Address,
		Latitude:                 req.Latitude,
		Longitude:                req.Longitude,
		RequiresVerification:     true,
		MinVerificationsRequired: req.MinVerificationsRequired,
	}
	if req.RequiresVerification != nil {
		church.RequiresVerification = *req.RequiresVerification
	}

	created, err := h.churchSvc.RegisterChurch(r.Context(), actor.ID, req.InvitationToken, church)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ChurchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	church, err := h.churchSvc.GetChurch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, church)
}

func (h *ChurchHandler) List(w http.ResponseWriter, r *http.Request) {
	churches, err := h.churchSvc.ListChurches(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, churches)
}

func (h *ChurchHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var church domain.Church
	if err := decodeBody(r, &church); err != nil {
		writeError(w, err)
		return
	}
	church.ID = id
	if err := h.churchSvc.UpdateChurch(r.Context(), actor, &church); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ChurchHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *ChurchHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

type decisionRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *ChurchHandler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
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

	if approve {
		err = h.churchSvc.ApproveApplication(r.Context(), actor, id)
	} else {
		var req decisionRequest
		if decodeErr := decodeBody(r, &req); decodeErr != nil {
			writeError(w, decodeErr)
			return
		}
		err = h.churchSvc.RejectApplication(r.Context(), actor, id, req.Reason)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type joinRequest struct {
	Notes string `json:"notes,omitempty"`
}

// Join files a membership request with the church.
func (h *ChurchHandler) Join(w http.ResponseWriter, r *http.Request) {
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
	var req joinRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.verifSvc.RequestToJoin(r.Context(), actor.ID, id, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
