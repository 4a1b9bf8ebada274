package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/jobs"
)

// CronHandler exposes the expiry sweeps over HTTP for external cron
// triggers. Guarded by the shared-secret middleware.
type CronHandler struct {
	runner *jobs.JobRunner
}

func NewCronHandler(runner *jobs.JobRunner) *CronHandler {
	return &CronHandler{runner: runner}
}

var sweepEntities = []string{"church_invitation", "member_item_request", "ping", "message"}

// RunSweep executes one named sweep and reports what it expired.
func (h *CronHandler) RunSweep(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]
	result, err := h.runner.RunSweep(r.Context(), entity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RunAllSweeps executes every sweep once and reports per-entity counts.
func (h *CronHandler) RunAllSweeps(w http.ResponseWriter, r *http.Request) {
	results := make([]domain.SweepResult, 0, len(sweepEntities))
	for _, entity := range sweepEntities {
		result, err := h.runner.RunSweep(r.Context(), entity)
		if err != nil {
			writeError(w, err)
			return
		}
		results = append(results, result)
	}
	writeJSON(w, http.StatusOK, results)
}
