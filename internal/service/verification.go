package service

import (
	"context"
	"fmt"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository"
)

type verificationService struct {
	verifRepo    repository.VerificationRepository
	userRepo     repository.UserRepository
	churchRepo   repository.ChurchRepository
	noteRepo     repository.NotificationRepository
	activityRepo repository.ActivityLogRepository
	emailSvc     EmailService
	pushSvc      PushService
}

func NewVerificationService(
	verifRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	churchRepo repository.ChurchRepository,
	noteRepo repository.NotificationRepository,
	activityRepo repository.ActivityLogRepository,
	emailSvc EmailService,
	pushSvc PushService,
) VerificationService {
	return &verificationService{
		verifRepo:    verifRepo,
		userRepo:     userRepo,
		churchRepo:   churchRepo,
		noteRepo:     noteRepo,
		activityRepo: activityRepo,
		emailSvc:     emailSvc,
		pushSvc:      pushSvc,
	}
}

func (s *verificationService) RequestToJoin(ctx context.Context, userID, churchID int32, notes string) (*domain.VerificationRequest, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.MembershipStatus == domain.MembershipStatusVerified {
		return nil, domain.InvalidState("user is already a verified member")
	}

	church, err := s.churchRepo.GetByID(ctx, churchID)
	if err != nil {
		return nil, err
	}
	if church.ApplicationStatus != domain.ApplicationStatusApproved {
		return nil, domain.InvalidState("church is not approved")
	}

	req := &domain.VerificationRequest{
		UserID:   userID,
		ChurchID: churchID,
		Status:   domain.VerificationRequestStatusPending,
		Notes:    notes,
	}
	if err := s.verifRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.SetMembershipRequested(ctx, userID, churchID, now); err != nil {
		return nil, fmt.Errorf("failed to mark membership requested: %w", err)
	}

	// Churches without peer verification auto-approve on the lead
	// contact's behalf; the quorum path only runs when required.
	if !church.RequiresVerification {
		return req, s.approve(ctx, req, church, user)
	}

	return req, nil
}

// PendingQueue returns the join requests the verifier may act on:
// their church's open requests minus the ones they already vouched
// for, oldest first so no request starves.
func (s *verificationService) PendingQueue(ctx context.Context, verifierID int32) ([]domain.VerificationRequest, error) {
	verifier, err := s.userRepo.GetByID(ctx, verifierID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVerifierEligible(verifier); err != nil {
		return nil, err
	}
	return s.verifRepo.ListPendingForVerifier(ctx, *verifier.ChurchID, verifierID)
}

func (s *verificationService) Vouch(ctx context.Context, verifierID, requesterID, churchID int32) (*domain.VerificationProgress, error) {
	req, err := s.verifRepo.GetPendingRequest(ctx, requesterID, churchID)
	if err != nil {
		return nil, err
	}

	verifier, err := s.userRepo.GetByID(ctx, verifierID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVerifierEligible(verifier); err != nil {
		return nil, err
	}
	if *verifier.ChurchID != churchID {
		return nil, domain.Forbidden("verifier belongs to a different church")
	}
	if verifierID == requesterID {
		return nil, domain.Forbidden("cannot vouch for yourself")
	}

	church, err := s.churchRepo.GetByID(ctx, churchID)
	if err != nil {
		return nil, err
	}

	// The unique (request, verifier) index makes a duplicate vouch a
	// Conflict rather than a silent no-op: the count must stay a
	// distinct-voter count.
	vouch := &domain.MemberVerification{RequestID: req.ID, VerifierID: verifierID}
	if err := s.verifRepo.CreateVouch(ctx, vouch); err != nil {
		return nil, err
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    verifierID,
		Action:     "VOUCH",
		EntityType: "verification_request",
		EntityID:   req.ID,
	})

	count, err := s.verifRepo.CountVouches(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if count >= church.MinVerificationsRequired {
		requester, err := s.userRepo.GetByID(ctx, requesterID)
		if err != nil {
			return nil, err
		}
		if err := s.approve(ctx, req, church, requester); err != nil {
			return nil, err
		}
	}

	names, err := s.verifRepo.ListVerifierNames(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &domain.VerificationProgress{
		CurrentVerifications:  count,
		RequiredVerifications: church.MinVerificationsRequired,
		VerifierNames:         names,
	}, nil
}

// approve promotes the requester to full membership. The conditional
// status flip means a concurrent final vouch approves only once.
func (s *verificationService) approve(ctx context.Context, req *domain.VerificationRequest, church *domain.Church, requester *domain.User) error {
	applied, err := s.verifRepo.SetRequestStatus(ctx, req.ID, domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to approve request: %w", err)
	}
	if !applied {
		// Another vouch won the race; membership is already settled.
		return nil
	}
	req.Status = domain.VerificationRequestStatusApproved

	now := time.Now()
	if err := s.userRepo.SetVerifiedMembership(ctx, requester.ID, church.ID, now); err != nil {
		return fmt.Errorf("failed to set verified membership: %w", err)
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    requester.ID,
		Action:     "MEMBERSHIP_APPROVED",
		EntityType: "verification_request",
		EntityID:   req.ID,
	})

	_ = s.emailSvc.SendMembershipApproved(ctx, requester.Email, requester.Name, church.Name)
	if requester.DeviceToken != "" {
		if err := s.pushSvc.Send(ctx, requester.DeviceToken, "Membership approved", fmt.Sprintf("Welcome to %s", church.Name), map[string]string{"type": "MEMBERSHIP_APPROVED"}); err != nil {
			logger.Warn("Push delivery failed", "user_id", requester.ID, "error", err)
		}
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  requester.ID,
		Title:   "Membership approved",
		Message: fmt.Sprintf("You are now a verified member of %s", church.Name),
		Attributes: map[string]string{
			"type":      "MEMBERSHIP_APPROVED",
			"church_id": fmt.Sprintf("%d", church.ID),
		},
	})

	// Accounts disabled for lacking membership come back automatically.
	if requester.Disabled {
		if err := s.userRepo.SetDisabled(ctx, requester.ID, false); err != nil {
			return fmt.Errorf("failed to reactivate account: %w", err)
		}
		_ = s.emailSvc.SendAccountReactivated(ctx, requester.Email, requester.Name)
	}

	return nil
}

func (s *verificationService) Progress(ctx context.Context, requesterID, churchID int32) (*domain.VerificationProgress, error) {
	req, err := s.verifRepo.GetPendingRequest(ctx, requesterID, churchID)
	if err != nil {
		return nil, err
	}
	church, err := s.churchRepo.GetByID(ctx, churchID)
	if err != nil {
		return nil, err
	}
	count, err := s.verifRepo.CountVouches(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	names, err := s.verifRepo.ListVerifierNames(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &domain.VerificationProgress{
		CurrentVerifications:  count,
		RequiredVerifications: church.MinVerificationsRequired,
		VerifierNames:         names,
	}, nil
}

func (s *verificationService) RejectRequest(ctx context.Context, actor *domain.User, requestID int32, reason string) error {
	req, err := s.verifRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	church, err := s.churchRepo.GetByID(ctx, req.ChurchID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionRequestReject, church); err != nil {
		return err
	}

	applied, err := s.verifRepo.SetRequestStatus(ctx, requestID, domain.VerificationRequestStatusPending, domain.VerificationRequestStatusRejected)
	if err != nil {
		return err
	}
	if !applied {
		return domain.InvalidState("request is not pending")
	}

	if err := s.userRepo.ClearMembership(ctx, req.UserID); err != nil {
		return fmt.Errorf("failed to clear membership: %w", err)
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actor.ID,
		Action:     "REQUEST_REJECTED",
		EntityType: "verification_request",
		EntityID:   requestID,
		Detail:     reason,
	})
	return nil
}

func (s *verificationService) checkVerifierEligible(verifier *domain.User) error {
	if verifier.MembershipStatus != domain.MembershipStatusVerified || verifier.ChurchID == nil {
		return domain.Forbidden("only verified members may vouch")
	}
	if !verifier.CanVerify(time.Now()) {
		return domain.Forbidden("members must be verified for at least 7 days before vouching")
	}
	return nil
}
