package service

import (
	"context"
	"fmt"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type churchService struct {
	churchRepo   repository.ChurchRepository
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
	invSvc       InvitationService
	emailSvc     EmailService
}

func NewChurchService(
	churchRepo repository.ChurchRepository,
	userRepo repository.UserRepository,
	activityRepo repository.ActivityLogRepository,
	invSvc InvitationService,
	emailSvc EmailService,
) ChurchService {
	return &churchService{
		churchRepo:   churchRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		invSvc:       invSvc,
		emailSvc:     emailSvc,
	}
}

// RegisterChurch files a church application. When an invitation token
// is presented it is claimed first; a dead token fails the whole
// registration so the invitation books stay accurate.
func (s *churchService) RegisterChurch(ctx context.Context, leadID int32, invitationToken string, church *domain.Church) (*domain.Church, error) {
	if church.Name == "" {
		return nil, domain.Validation("church name is required")
	}
	if church.MinVerificationsRequired <= 0 {
		church.MinVerificationsRequired = 2
	}

	lead, err := s.userRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.churchRepo.GetByLeadContact(ctx, leadID); err == nil && existing != nil {
		return nil, domain.Conflict("user already leads church %s", existing.Name)
	} else if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	if invitationToken != "" {
		if _, err := s.invSvc.ClaimForRegistration(ctx, invitationToken, leadID); err != nil {
			return nil, err
		}
	}

	church.LeadContactID = leadID
	church.ApplicationStatus = domain.ApplicationStatusPending
	if err := s.churchRepo.Create(ctx, church); err != nil {
		return nil, err
	}

	lead.Role = domain.UserRoleChurch
	if err := s.userRepo.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to promote lead contact: %w", err)
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    leadID,
		Action:     "CHURCH_APPLIED",
		EntityType: "church",
		EntityID:   church.ID,
		Detail:     church.Name,
	})
	return church, nil
}

func (s *churchService) ApproveApplication(ctx context.Context, actor *domain.User, churchID int32) error {
	return s.decide(ctx, actor, churchID, domain.ApplicationStatusApproved, "")
}

func (s *churchService) RejectApplication(ctx context.Context, actor *domain.User, churchID int32, reason string) error {
	return s.decide(ctx, actor, churchID, domain.ApplicationStatusRejected, reason)
}

func (s *churchService) decide(ctx context.Context, actor *domain.User, churchID int32, status domain.ApplicationStatus, reason string) error {
	if err := Authorize(actor, ActionChurchApprove, nil); err != nil {
		return err
	}
	church, err := s.churchRepo.GetByID(ctx, churchID)
	if err != nil {
		return err
	}
	if church.ApplicationStatus != domain.ApplicationStatusPending {
		return domain.InvalidState("application is already %s", church.ApplicationStatus)
	}

	if err := s.churchRepo.SetApplicationStatus(ctx, churchID, status); err != nil {
		return err
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actor.ID,
		Action:     "CHURCH_" + string(status),
		EntityType: "church",
		EntityID:   churchID,
		Detail:     reason,
	})

	if lead, err := s.userRepo.GetByID(ctx, church.LeadContactID); err == nil {
		_ = s.emailSvc.SendApplicationDecision(ctx, lead.Email, church.Name, string(status), reason)
	}
	return nil
}

func (s *churchService) GetChurch(ctx context.Context, id int32) (*domain.Church, error) {
	return s.churchRepo.GetByID(ctx, id)
}

func (s *churchService) ListChurches(ctx context.Context) ([]domain.Church, error) {
	return s.churchRepo.List(ctx)
}

// UpdateChurch edits mutable church fields. Application status and lead
// contact never move through this path.
func (s *churchService) UpdateChurch(ctx context.Context, actor *domain.User, church *domain.Church) error {
	current, err := s.churchRepo.GetByID(ctx, church.ID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionChurchUpdate, current); err != nil {
		return err
	}
	church.LeadContactID = current.LeadContactID
	church.ApplicationStatus = current.ApplicationStatus
	return s.churchRepo.Update(ctx, church)
}
