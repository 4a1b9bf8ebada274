package service

import (
	"context"
	"testing"
	"time"

	"churchshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMessageFixture() (*messageService, *MockMessageRepo, *MockChurchRepo, *MockUserRepo) {
	msgRepo := new(MockMessageRepo)
	churchRepo := new(MockChurchRepo)
	userRepo := new(MockUserRepo)
	svc := NewMessageService(msgRepo, churchRepo, userRepo).(*messageService)
	return svc, msgRepo, churchRepo, userRepo
}

func TestCreateMessage_UnderQuota(t *testing.T) {
	svc, msgRepo, churchRepo, userRepo := newMessageFixture()
	ctx := context.Background()

	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)
	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	msgRepo.On("CountDraftsByChurch", ctx, int32(1)).Return(int32(domain.MaxConcurrentDrafts-1), nil)
	msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)

	msg, err := svc.CreateMessage(ctx, 11, 1, "Food drive", "Saturday 9am", nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageStatusDraft, msg.Status)
	assert.Equal(t, domain.MessageTypeChurchPost, msg.Type)
}

func TestCreateMessage_QuotaExceeded(t *testing.T) {
	svc, msgRepo, churchRepo, userRepo := newMessageFixture()
	ctx := context.Background()

	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)
	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	msgRepo.On("CountDraftsByChurch", ctx, int32(1)).Return(int32(domain.MaxConcurrentDrafts), nil)

	_, err := svc.CreateMessage(ctx, 11, 1, "Food drive", "", nil)
	assert.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMessage_ScheduledStatus(t *testing.T) {
	svc, msgRepo, churchRepo, userRepo := newMessageFixture()
	ctx := context.Background()

	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)
	userRepo.On("GetByID", ctx, int32(11)).Return(&domain.User{ID: 11}, nil)
	msgRepo.On("CountDraftsByChurch", ctx, int32(1)).Return(int32(0), nil)
	msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)

	later := time.Now().Add(2 * time.Hour)
	msg, err := svc.CreateMessage(ctx, 11, 1, "Potluck", "", &later)
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageStatusScheduled, msg.Status)
}

func TestCreateUserShare_PublishesImmediately(t *testing.T) {
	svc, msgRepo, _, userRepo := newMessageFixture()
	ctx := context.Background()

	userRepo.On("GetByID", ctx, int32(40)).Return(verifiedMember(40, 1, 30), nil)
	msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)

	msg, err := svc.CreateUserShare(ctx, 40, 1, "Extra produce", "Tomatoes to give away")
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageStatusPublished, msg.Status)
	assert.Equal(t, domain.ModerationStatusAutoApproved, msg.ModerationStatus)
	assert.NotNil(t, msg.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(domain.MessageLifetime), *msg.ExpiresAt, 5*time.Second)

	// Drafts quota does not apply to immediate shares.
	msgRepo.AssertNotCalled(t, "CountDraftsByChurch", mock.Anything, mock.Anything)
}

func TestCreateUserShare_RequiresVerifiedMembership(t *testing.T) {
	svc, msgRepo, _, userRepo := newMessageFixture()
	ctx := context.Background()

	churchID := int32(1)
	userRepo.On("GetByID", ctx, int32(40)).Return(&domain.User{ID: 40, ChurchID: &churchID, MembershipStatus: domain.MembershipStatusRequested}, nil)

	_, err := svc.CreateUserShare(ctx, 40, 1, "Extra produce", "")
	assert.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	msgRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublishMessage_WrongState(t *testing.T) {
	svc, msgRepo, churchRepo, _ := newMessageFixture()
	ctx := context.Background()

	msgRepo.On("GetByID", ctx, int32(3)).Return(&domain.Message{ID: 3, ChurchID: 1, AuthorID: 11, Status: domain.MessageStatusArchived}, nil)
	churchRepo.On("GetByID", ctx, int32(1)).Return(approvedChurch(1, 11), nil)
	msgRepo.On("Publish", ctx, int32(3), mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(false, nil)

	_, err := svc.PublishMessage(ctx, 11, 3)
	assert.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
}

func TestGetMessage_LazyExpiry(t *testing.T) {
	svc, msgRepo, _, _ := newMessageFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	msgRepo.On("GetByID", ctx, int32(3)).Return(&domain.Message{ID: 3, Status: domain.MessageStatusPublished, ExpiresAt: &past}, nil)
	msgRepo.On("SetStatus", ctx, int32(3), domain.MessageStatusPublished, domain.MessageStatusExpired).Return(true, nil)

	msg, err := svc.GetMessage(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.MessageStatusExpired, msg.Status)
}

func TestListChurchMessages_MapsEffectiveStatus(t *testing.T) {
	svc, msgRepo, _, _ := newMessageFixture()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	msgs := []domain.Message{
		{ID: 1, Status: domain.MessageStatusPublished, ExpiresAt: &past},
		{ID: 2, Status: domain.MessageStatusPublished, ExpiresAt: &future},
		{ID: 3, Status: domain.MessageStatusDraft},
	}
	msgRepo.On("ListByChurch", ctx, int32(1), int32(1), int32(20)).Return(msgs, int32(3), nil)

	got, total, err := svc.ListChurchMessages(ctx, 1, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Equal(t, domain.MessageStatusExpired, got[0].Status)
	assert.Equal(t, domain.MessageStatusPublished, got[1].Status)
	assert.Equal(t, domain.MessageStatusDraft, got[2].Status)
}
