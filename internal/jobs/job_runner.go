package jobs

import (
	"database/sql"

	"churchshare-backend/internal/config"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled expiry sweeps
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// Config exposes the configuration for scheduler registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every expiry sweep once (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpireChurchInvitations()
	jr.ExpireMemberItemRequests()
	jr.ExpirePings()
	jr.ExpireMessages()
}
