package service

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository"

	"github.com/google/uuid"
)

type invitationService struct {
	invRepo      repository.InvitationRepository
	activityRepo repository.ActivityLogRepository
	emailSvc     EmailService
}

func NewInvitationService(
	invRepo repository.InvitationRepository,
	activityRepo repository.ActivityLogRepository,
	emailSvc EmailService,
) InvitationService {
	return &invitationService{
		invRepo:      invRepo,
		activityRepo: activityRepo,
		emailSvc:     emailSvc,
	}
}

// InviteChurch creates a 7-day invitation for a prospective church. An
// existing PENDING invitation for the same email blocks a duplicate,
// unless it has quietly expired, in which case the read flips it first.
func (s *invitationService) InviteChurch(ctx context.Context, actor *domain.User, email, churchName string) (*domain.ChurchInvitation, error) {
	if err := Authorize(actor, ActionInvitationCreate, nil); err != nil {
		return nil, err
	}
	if email == "" || churchName == "" {
		return nil, domain.Validation("email and church name are required")
	}

	existing, err := s.invRepo.GetPendingByEmail(ctx, email)
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	if err != nil {
		existing = nil
	}
	if existing != nil {
		existing = s.applyLazyExpiry(ctx, existing)
		if existing.Status == domain.InvitationStatusPending {
			return nil, domain.Conflict("a pending invitation for %s already exists", email)
		}
	}

	inv := &domain.ChurchInvitation{
		Email:      email,
		ChurchName: churchName,
		Token:      uuid.NewString(),
		InvitedBy:  actor.ID,
		Status:     domain.InvitationStatusPending,
		ExpiresAt:  time.Now().Add(domain.ChurchInvitationWindow),
	}
	if err := s.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendChurchInvitation(ctx, email, churchName, inv.Token); err != nil {
		logger.Warn("Invitation email delivery failed", "invitation_id", inv.ID, "error", err)
	} else {
		_ = s.invRepo.IncrementSent(ctx, inv.ID)
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actor.ID,
		Action:     "CHURCH_INVITED",
		EntityType: "church_invitation",
		EntityID:   inv.ID,
		Detail:     churchName,
	})
	return inv, nil
}

// ResendInvitation resets the deadline to now+7d without changing
// status; anything but a live PENDING invitation is rejected.
func (s *invitationService) ResendInvitation(ctx context.Context, actor *domain.User, invitationID int32) (*domain.ChurchInvitation, error) {
	if err := Authorize(actor, ActionInvitationManage, nil); err != nil {
		return nil, err
	}

	inv, err := s.invRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	inv = s.applyLazyExpiry(ctx, inv)
	if inv.Status != domain.InvitationStatusPending {
		return nil, domain.InvalidState("cannot resend a %s invitation", inv.Status)
	}

	newExpiry := time.Now().Add(domain.ChurchInvitationWindow)
	applied, err := s.invRepo.ResetExpiry(ctx, invitationID, newExpiry)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("invitation is no longer pending")
	}
	inv.ExpiresAt = newExpiry

	if err := s.emailSvc.SendChurchInvitation(ctx, inv.Email, inv.ChurchName, inv.Token); err != nil {
		logger.Warn("Invitation email delivery failed", "invitation_id", inv.ID, "error", err)
	} else {
		_ = s.invRepo.IncrementResent(ctx, inv.ID)
	}
	return inv, nil
}

func (s *invitationService) CancelInvitation(ctx context.Context, actor *domain.User, invitationID int32) error {
	if err := Authorize(actor, ActionInvitationManage, nil); err != nil {
		return err
	}
	applied, err := s.invRepo.SetStatus(ctx, invitationID, domain.InvitationStatusPending, domain.InvitationStatusCancelled)
	if err != nil {
		return err
	}
	if !applied {
		return domain.InvalidState("only pending invitations can be cancelled")
	}
	return nil
}

func (s *invitationService) GetInvitation(ctx context.Context, invitationID int32) (*domain.ChurchInvitation, error) {
	inv, err := s.invRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	return s.applyLazyExpiry(ctx, inv), nil
}

func (s *invitationService) LookupByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error) {
	inv, err := s.invRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.applyLazyExpiry(ctx, inv), nil
}

func (s *invitationService) GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error) {
	return s.invRepo.GetAnalytics(ctx, invitationID)
}

// applyLazyExpiry flips a stale PENDING invitation to EXPIRED on read.
// The conditional update makes a race with the sweep harmless, and
// re-checking an already EXPIRED row is a no-op.
func (s *invitationService) applyLazyExpiry(ctx context.Context, inv *domain.ChurchInvitation) *domain.ChurchInvitation {
	if inv.Status != domain.InvitationStatusPending || !domain.IsExpired(inv.ExpiresAt, time.Now()) {
		return inv
	}
	if _, err := s.invRepo.SetStatus(ctx, inv.ID, domain.InvitationStatusPending, domain.InvitationStatusExpired); err != nil {
		logger.Warn("Lazy expiry write failed", "invitation_id", inv.ID, "error", err)
	}
	inv.Status = domain.InvitationStatusExpired
	return inv
}

// ClaimForRegistration stamps the invitation claimed by the registering
// church lead. Exposed on the concrete type for the church service.
func (s *invitationService) ClaimForRegistration(ctx context.Context, token string, userID int32) (*domain.ChurchInvitation, error) {
	inv, err := s.LookupByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationStatusPending {
		return nil, domain.InvalidState("invitation is %s", inv.Status)
	}
	applied, err := s.invRepo.MarkClaimed(ctx, inv.ID, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("invitation was claimed concurrently")
	}
	inv.Status = domain.InvitationStatusClaimed
	return inv, nil
}
