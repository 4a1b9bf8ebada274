package jobs

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
)

// The sweeps are conditional UPDATE ... RETURNING statements, so two
// overlapping runs never double-expire a row and a zero-match pass is
// an ordinary success.

// ExpireChurchInvitations flips PENDING church invitations past their
// deadline to EXPIRED.
func (jr *JobRunner) ExpireChurchInvitations() {
	jr.runWithRecovery("ExpireChurchInvitations", func() {
		jr.sweep(context.Background(), "church_invitation", jr.store.InvitationRepository.ExpireOverdue)
	})
}

// ExpireMemberItemRequests flips REQUESTED member item requests past
// their 7-day window to EXPIRED.
func (jr *JobRunner) ExpireMemberItemRequests() {
	jr.runWithRecovery("ExpireMemberItemRequests", func() {
		jr.sweep(context.Background(), "member_item_request", jr.store.MemberItemRequestRepository.ExpireOverdue)
	})
}

// ExpirePings flips unanswered PENDING pings past their window to
// EXPIRED.
func (jr *JobRunner) ExpirePings() {
	jr.runWithRecovery("ExpirePings", func() {
		jr.sweep(context.Background(), "ping", jr.store.PingRepository.ExpireOverdue)
	})
}

// ExpireMessages flips PUBLISHED messages past their 24h lifetime to
// EXPIRED. Runs hourly since the message window is much shorter than
// the 7-day ones.
func (jr *JobRunner) ExpireMessages() {
	jr.runWithRecovery("ExpireMessages", func() {
		jr.sweep(context.Background(), "message", jr.store.MessageRepository.ExpireOverdue)
	})
}

func (jr *JobRunner) sweep(ctx context.Context, entity string, expire func(context.Context, time.Time) ([]int32, error)) domain.SweepResult {
	affected, err := expire(ctx, time.Now())
	if err != nil {
		logger.Error("Expiry sweep failed", "entity", entity, "error", err)
		return domain.SweepResult{Entity: entity}
	}

	result := domain.SweepResult{
		Entity:   entity,
		Count:    int32(len(affected)),
		Affected: affected,
	}
	logger.Info("Expiry sweep finished", "entity", entity, "count", result.Count)
	for _, id := range affected {
		logger.Debug("Expired entity", "entity", entity, "id", id)
	}
	return result
}

// RunSweep executes one named sweep synchronously and returns its
// result. Used by the cron-triggered HTTP endpoints.
func (jr *JobRunner) RunSweep(ctx context.Context, entity string) (domain.SweepResult, error) {
	switch entity {
	case "church_invitation":
		return jr.sweep(ctx, entity, jr.store.InvitationRepository.ExpireOverdue), nil
	case "member_item_request":
		return jr.sweep(ctx, entity, jr.store.MemberItemRequestRepository.ExpireOverdue), nil
	case "ping":
		return jr.sweep(ctx, entity, jr.store.PingRepository.ExpireOverdue), nil
	case "message":
		return jr.sweep(ctx, entity, jr.store.MessageRepository.ExpireOverdue), nil
	default:
		return domain.SweepResult{}, domain.NotFound("unknown sweep entity: %s", entity)
	}
}
