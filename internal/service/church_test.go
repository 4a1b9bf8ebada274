package service

import (
	"context"
	"testing"

	"churchshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newChurchFixture() (*churchService, *MockChurchRepo, *MockUserRepo, *MockActivityLogRepo, *MockInvitationService, *MockEmailService) {
	churchRepo := new(MockChurchRepo)
	userRepo := new(MockUserRepo)
	activityRepo := new(MockActivityLogRepo)
	invSvc := new(MockInvitationService)
	emailSvc := new(MockEmailService)
	svc := NewChurchService(churchRepo, userRepo, activityRepo, invSvc, emailSvc).(*churchService)
	return svc, churchRepo, userRepo, activityRepo, invSvc, emailSvc
}

func TestRegisterChurch_DefaultsQuorum(t *testing.T) {
	svc, churchRepo, userRepo, activityRepo, _, _ := newChurchFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11, Role: domain.UserRoleUser}, nil)
	churchRepo.On("GetByLeadContact", ctx, int32(11)).Return(nil, domain.NotFound("no church"))
	churchRepo.On("Create", ctx, mock.AnythingOfType("*domain.Church")).Return(nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)

	church, err := svc.RegisterChurch(ctx, 11, "", &domain.Church{Name: "Grace Church"})
	assert.NoError(t, err)
	assert.Equal(t, int32(2), church.MinVerificationsRequired)
	assert.Equal(t, int32(11), church.LeadContactID)
	assert.Equal(t, domain.ApplicationStatusPending, church.ApplicationStatus)
}

func TestRegisterChurch_PromotesLead(t *testing.T) {
	svc, churchRepo, userRepo, activityRepo, _, _ := newChurchFixture()
	ctx := context.Background()

	lead := &domain.User{ID: 11, Role: domain.UserRoleUser}
	userRepo.On("GetByID", ctx, int32(11)).Return(lead, nil)
	churchRepo.On("GetByLeadContact", ctx, int32(11)).Return(nil, domain.NotFound("no church"))
	churchRepo.On("Create", ctx, mock.AnythingOfType("*domain.Church")).Return(nil)
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 11 && u.Role == domain.UserRoleChurch
	})).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)

	_, err := svc.RegisterChurch(ctx, 11, "", &domain.Church{Name: "Grace Church", MinVerificationsRequired: 3})
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestRegisterChurch_AlreadyLeadsConflict(t *testing.T) {
	svc, churchRepo, userRepo, _, _, _ := newChurchFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	churchRepo.On("GetByLeadContact", ctx, int32(11)).Return(approvedChurch(1, 11), nil)

	_, err := svc.RegisterChurch(ctx, 11, "", &domain.Church{Name: "Second Church"})
	assert.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	churchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterChurch_ClaimsInvitation(t *testing.T) {
	svc, churchRepo, userRepo, activityRepo, invSvc, _ := newChurchFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	churchRepo.On("GetByLeadContact", ctx, int32(11)).Return(nil, domain.NotFound("no church"))
	invSvc.On("ClaimForRegistration", ctx, "tok", int32(11)).Return(&domain.ChurchInvitation{ID: 5, Status: domain.InvitationStatusClaimed}, nil)
	churchRepo.On("Create", ctx, mock.AnythingOfType("*domain.Church")).Return(nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)

	_, err := svc.RegisterChurch(ctx, 11, "tok", &domain.Church{Name: "Grace Church"})
	assert.NoError(t, err)
	invSvc.AssertExpectations(t)
}

func TestRegisterChurch_DeadInvitationFailsWholeRegistration(t *testing.T) {
	svc, churchRepo, userRepo, _, invSvc, _ := newChurchFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	churchRepo.On("GetByLeadContact", ctx, int32(11)).Return(nil, domain.NotFound("no church"))
	invSvc.On("ClaimForRegistration", ctx, "tok", int32(11)).Return(nil, domain.InvalidState("invitation is EXPIRED"))

	_, err := svc.RegisterChurch(ctx, 11, "tok", &domain.Church{Name: "Grace Church"})
	assert.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	churchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApproveApplication_NotifiesLead(t *testing.T) {
	svc, churchRepo, userRepo, activityRepo, _, emailSvc := newChurchFixture()
	ctx := context.Background()

	church := &domain.Church{ID: 1, Name: "Grace Church", LeadContactID: 11, ApplicationStatus: domain.ApplicationStatusPending}
	churchRepo.On("GetByID", ctx, int32(1)).Return(church, nil)
	churchRepo.On("SetApplicationStatus", ctx, int32(1), domain.ApplicationStatusApproved).Return(nil)
	activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityLog")).Return(nil)
	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11, Email: "lead@example.com"}, nil)
	emailSvc.On("SendApplicationDecision", ctx, "lead@example.com", "Grace Church", "APPROVED", "").Return(nil)

	err := svc.ApproveApplication(ctx, adminUser(), 1)
	assert.NoError(t, err)
	emailSvc.AssertExpectations(t)
}

func TestApproveApplication_NonAdminForbidden(t *testing.T) {
	svc, churchRepo, _, _, _, _ := newChurchFixture()

	err := svc.ApproveApplication(context.Background(), &domain.User{ID: 11, Role: domain.UserRoleChurch}, 1)
	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	churchRepo.AssertNotCalled(t, "SetApplicationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectApplication_AlreadyDecided(t *testing.T) {
	svc, churchRepo, _, _, _, _ := newChurchFixture()
	ctx := context.Background()

	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)

	err := svc.RejectApplication(ctx, adminUser(), 1, "incomplete paperwork")
	assert.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	churchRepo.AssertNotCalled(t, "SetApplicationStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateChurch_PreservesLeadAndStatus(t *testing.T) {
	svc, churchRepo, _, _, _, _ := newChurchFixture()
	ctx := context.Background()

	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)
	churchRepo.On("Update", ctx, mock.MatchedBy(func(c *domain.Church) bool {
		return c.LeadContactID == 11 && c.ApplicationStatus == domain.ApplicationStatusApproved
	})).Return(nil)

	edit := &domain.Church{ID: 1, Name: "Grace Community Church", LeadContactID: 99, ApplicationStatus: domain.ApplicationStatusPending}
	err := svc.UpdateChurch(ctx, &domain.User{ID: 11, Role: domain.UserRoleChurch}, edit)
	assert.NoError(t, err)
	churchRepo.AssertExpectations(t)
}
