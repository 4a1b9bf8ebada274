package service

import (
	"context"
	"testing"
	"time"

	"churchshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func verifiedMember(id, churchID int32, verifiedDaysAgo int) *domain.User {
	verifiedAt := time.Now().Add(-time.Duration(verifiedDaysAgo) * 24 * time.Hour)
	return &domain.User{
		ID:               id,
		Email:            "member@example.com",
		Name:             "Member",
		Role:             domain.UserRoleUser,
		ChurchID:         &churchID,
		MembershipStatus: domain.MembershipStatusVerified,
		VerifiedAt:       &verifiedAt,
	}
}

func quorumChurch(id int32, min int32) *domain.Church {
	return &domain.Church{
		ID:                       id,
		Name:                     "First Church",
		LeadContactID:            99,
		ApplicationStatus:        domain.ApplicationStatusApproved,
		RequiresVerification:     true,
		MinVerificationsRequired: min,
	}
}

func newVerificationFixture() (*verificationService, *MockVerificationRepo, *MockUserRepo, *MockChurchRepo, *MockNotificationRepo, *MockActivityLogRepo, *MockEmailService, *MockPushService) {
	verifRepo := new(MockVerificationRepo)
	userRepo := new(MockUserRepo)
	churchRepo := new(MockChurchRepo)
	noteRepo := new(MockNotificationRepo)
	activityRepo := new(MockActivityLogRepo)
	emailSvc := new(MockEmailService)
	pushSvc := new(MockPushService)
	svc := NewVerificationService(verifRepo, userRepo, churchRepo, noteRepo, activityRepo, emailSvc, pushSvc).(*verificationService)
	return svc, verifRepo, userRepo, churchRepo, noteRepo, activityRepo, emailSvc, pushSvc
}

func TestVouch_BelowQuorum(t *testing.T) {
	svc, verifRepo, userRepo, churchRepo, _, activityRepo, _, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}

	verifRepo.On("GetPendingRequest", ctx, int32(5), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(verifiedMember(2, 1, 30), nil)
	churchRepo.On("GetByID", ctx, int32(1)).Return(quorumChurch(1, 2), nil)
	verifRepo.On("CreateVouch", ctx, mock.AnythingOfType("*domain.MemberVerification")).Return(nil)
	verifRepo.On("CountVouches", ctx, int32(10)).Return(int32(1), nil)
	verifRepo.On("ListVerifierNames", ctx, int32(10)).Return([]string{"Member"}, nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)

	progress, err := svc.Vouch(ctx, 2, 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), progress.CurrentVerifications)
	assert.Equal(t, int32(2), progress.RequiredVerifications)

	// One vouch short of quorum must not touch the request status.
	verifRepo.AssertNotCalled(t, "SetRequestStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVouch_ReachesQuorumAndPromotes(t *testing.T) {
	svc, verifRepo, userRepo, churchRepo, noteRepo, activityRepo, emailSvc, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}
	requester := &domain.User{ID: 5, Email: "new@example.com", Name: "Newcomer", MembershipStatus: domain.MembershipStatusRequested}

	verifRepo.On("GetPendingRequest", ctx, int32(5), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(3)).Return(verifiedMember(3, 1, 30), nil)
	userRepo.On("GetByID", ctx, int32(5)).Return(requester, nil)
	churchRepo.On("GetByID", ctx, int32(1)).Return(quorumChurch(1, 2), nil)
	verifRepo.On("CreateVouch", ctx, mock.AnythingOfType("*domain.MemberVerification")).Return(nil)
	verifRepo.On("CountVouches", ctx, int32(10)).Return(int32(2), nil)
	verifRepo.On("SetRequestStatus", ctx, int32(10), domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved).Return(true, nil)
	userRepo.On("SetVerifiedMembership", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time")).Return(nil)
	verifRepo.On("ListVerifierNames", ctx, int32(10)).Return([]string{"A", "B"}, nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)
	emailSvc.On("SendMembershipApproved", ctx, "new@example.com", "Newcomer", "First Church").Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	progress, err := svc.Vouch(ctx, 3, 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), progress.CurrentVerifications)

	verifRepo.AssertCalled(t, "SetRequestStatus", ctx, int32(10), domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved)
	userRepo.AssertCalled(t, "SetVerifiedMembership", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time"))
	emailSvc.AssertExpectations(t)
}

func TestVouch_DuplicateIsConflict(t *testing.T) {
	svc, verifRepo, userRepo, churchRepo, _, _, _, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}

	verifRepo.On("GetPendingRequest", ctx, int32(5), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(verifiedMember(2, 1, 30), nil)
	churchRepo.On("GetByID", ctx, int32(1)).Return(quorumChurch(1, 2), nil)
	verifRepo.On("CreateVouch", ctx, mock.AnythingOfType("*domain.MemberVerification")).
		Return(domain.Conflict("verifier has already vouched for this request"))

	_, err := svc.Vouch(ctx, 2, 5, 1)
	assert.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// A rejected duplicate never recounts the quorum.
	verifRepo.AssertNotCalled(t, "CountVouches", mock.Anything, mock.Anything)
}

func TestVouch_VerifierTenureTooShort(t *testing.T) {
	svc, verifRepo, userRepo, _, _, _, _, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}

	verifRepo.On("GetPendingRequest", ctx, int32(5), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(verifiedMember(2, 1, 3), nil)

	_, err := svc.Vouch(ctx, 2, 5, 1)
	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	verifRepo.AssertNotCalled(t, "CreateVouch", mock.Anything, mock.Anything)
}

func TestVouch_SelfVouchForbidden(t *testing.T) {
	svc, verifRepo, userRepo, _, _, _, _, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 2, ChurchID: 1, Status: domain.VerificationRequestStatusPending}

	verifRepo.On("GetPendingRequest", ctx, int32(2), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(verifiedMember(2, 1, 30), nil)

	_, err := svc.Vouch(ctx, 2, 2, 1)
	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestVouch_OtherChurchForbidden(t *testing.T) {
	svc, verifRepo, userRepo, _, _, _, _, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}

	verifRepo.On("GetPendingRequest", ctx, int32(5), int32(1)).Return(req, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(verifiedMember(2, 7, 30), nil)

	_, err := svc.Vouch(ctx, 2, 5, 1)
	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestApprove_LostRaceIsNoop(t *testing.T) {
	svc, verifRepo, _, _, noteRepo, _, emailSvc, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}
	requester := &domain.User{ID: 5, Email: "new@example.com", Name: "Newcomer"}

	// Another vouch flipped the request first.
	verifRepo.On("SetRequestStatus", ctx, int32(10), domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved).Return(false, nil)

	err := svc.approve(ctx, req, quorumChurch(1, 2), requester)
	assert.NoError(t, err)

	emailSvc.AssertNotCalled(t, "SendMembershipApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	noteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestToJoin_AutoApproveWithoutVerification(t *testing.T) {
	svc, verifRepo, userRepo, churchRepo, noteRepo, activityRepo, emailSvc, _ := newVerificationFixture()
	ctx := context.Background()

	church := quorumChurch(1, 2)
	church.RequiresVerification = false
	user := &domain.User{ID: 5, Email: "new@example.com", Name: "Newcomer", MembershipStatus: domain.MembershipStatusNone}

	userRepo.On("GetByID", ctx, int32(5)).Return(user, nil)
	churchRepo.On("GetByID", ctx, int32(1)).Return(church, nil)
	verifRepo.On("CreateRequest", ctx, mock.AnythingOfType("*domain.VerificationRequest")).Return(nil)
	userRepo.On("SetMembershipRequested", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time")).Return(nil)
	verifRepo.On("SetRequestStatus", ctx, mock.AnythingOfType("int32"), domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved).Return(true, nil)
	userRepo.On("SetVerifiedMembership", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time")).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)
	emailSvc.On("SendMembershipApproved", ctx, "new@example.com", "Newcomer", "First Church").Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	req, err := svc.RequestToJoin(ctx, 5, 1, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.VerificationRequestStatusApproved, req.Status)
	userRepo.AssertCalled(t, "SetVerifiedMembership", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time"))
}

func TestRequestToJoin_AlreadyVerified(t *testing.T) {
	svc, _, userRepo, _, _, _, _, _ := newVerificationFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(5)).Return(verifiedMember(5, 1, 30), nil)

	_, err := svc.RequestToJoin(ctx, 5, 1, "")
	assert.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
}

func TestApprove_ReactivatesDisabledAccount(t *testing.T) {
	svc, verifRepo, userRepo, _, noteRepo, activityRepo, emailSvc, _ := newVerificationFixture()
	ctx := context.Background()

	req := &domain.VerificationRequest{ID: 10, UserID: 5, ChurchID: 1, Status: domain.VerificationRequestStatusPending}
	requester := &domain.User{ID: 5, Email: "new@example.com", Name: "Newcomer", Disabled: true}

	verifRepo.On("SetRequestStatus", ctx, int32(10), domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved).Return(true, nil)
	userRepo.On("SetVerifiedMembership", ctx, int32(5), int32(1), mock.AnythingOfType("time.Time")).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)
	emailSvc.On("SendMembershipApproved", ctx, "new@example.com", "Newcomer", "First Church").Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
	userRepo.On("SetDisabled", ctx, int32(5), false).Return(nil)
	emailSvc.On("SendAccountReactivated", ctx, "new@example.com", "Newcomer").Return(nil)

	err := svc.approve(ctx, req, quorumChurch(1, 2), requester)
	assert.NoError(t, err)
	userRepo.AssertCalled(t, "SetDisabled", ctx, int32(5), false)
	emailSvc.AssertCalled(t, "SendAccountReactivated", ctx, "new@example.com", "Newcomer")
}
