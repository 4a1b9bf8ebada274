package service

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SetMembershipRequested(ctx context.Context, userID, churchID int32, requestedAt time.Time) error {
	args := m.Called(ctx, userID, churchID, requestedAt)
	return args.Error(0)
}
func (m *MockUserRepo) SetVerifiedMembership(ctx context.Context, userID, churchID int32, verifiedAt time.Time) error {
	args := m.Called(ctx, userID, churchID, verifiedAt)
	return args.Error(0)
}
func (m *MockUserRepo) ClearMembership(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) IncrementInvitesCompleted(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserRepo) SetDisabled(ctx context.Context, userID int32, disabled bool) error {
	args := m.Called(ctx, userID, disabled)
	return args.Error(0)
}

// MockChurchRepo
type MockChurchRepo struct {
	mock.Mock
}

func (m *MockChurchRepo) Create(ctx context.Context, church *domain.Church) error {
	args := m.Called(ctx, church)
	return args.Error(0)
}
func (m *MockChurchRepo) GetByID(ctx context.Context, id int32) (*domain.Church, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Church), args.Error(1)
}
func (m *MockChurchRepo) GetByLeadContact(ctx context.Context, leadContactID int32) (*domain.Church, error) {
	args := m.Called(ctx, leadContactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Church), args.Error(1)
}
func (m *MockChurchRepo) List(ctx context.Context) ([]domain.Church, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Church), args.Error(1)
}
func (m *MockChurchRepo) Update(ctx context.Context, church *domain.Church) error {
	args := m.Called(ctx, church)
	return args.Error(0)
}
func (m *MockChurchRepo) SetApplicationStatus(ctx context.Context, id int32, status domain.ApplicationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockItemRepo) ListByChurch(ctx context.Context, churchID, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, churchID, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}
func (m *MockItemRepo) Claim(ctx context.Context, itemID, claimerID int32, claimedAt time.Time) (bool, error) {
	args := m.Called(ctx, itemID, claimerID, claimedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) Unclaim(ctx context.Context, itemID, claimerID int32) (bool, error) {
	args := m.Called(ctx, itemID, claimerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) Complete(ctx context.Context, itemID int32, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, itemID, completedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockItemRepo) SetOfferToMembers(ctx context.Context, itemID int32, offer bool) error {
	args := m.Called(ctx, itemID, offer)
	return args.Error(0)
}

// MockMemberItemRequestRepo
type MockMemberItemRequestRepo struct {
	mock.Mock
}

func (m *MockMemberItemRequestRepo) Create(ctx context.Context, req *domain.MemberItemRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMemberItemRequestRepo) GetByID(ctx context.Context, id int32) (*domain.MemberItemRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemberItemRequest), args.Error(1)
}
func (m *MockMemberItemRequestRepo) CountActiveByMember(ctx context.Context, memberID int32) (int32, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberItemRequestRepo) ListActiveByItem(ctx context.Context, itemID int32) ([]domain.MemberItemRequest, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.MemberItemRequest), args.Error(1)
}
func (m *MockMemberItemRequestRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.MemberItemRequestStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockMemberItemRequestRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int32), args.Error(1)
}

// MockVerificationRepo
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) CreateRequest(ctx context.Context, req *domain.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockVerificationRepo) GetRequestByID(ctx context.Context, id int32) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) GetPendingRequest(ctx context.Context, userID, churchID int32) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, userID, churchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) ListPendingForVerifier(ctx context.Context, churchID, verifierID int32) ([]domain.VerificationRequest, error) {
	args := m.Called(ctx, churchID, verifierID)
	return args.Get(0).([]domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) SetRequestStatus(ctx context.Context, id int32, from, to domain.VerificationRequestStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockVerificationRepo) CreateVouch(ctx context.Context, vouch *domain.MemberVerification) error {
	args := m.Called(ctx, vouch)
	return args.Error(0)
}
func (m *MockVerificationRepo) CountVouches(ctx context.Context, requestID int32) (int32, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockVerificationRepo) ListVerifierNames(ctx context.Context, requestID int32) ([]string, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).([]string), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.ChurchInvitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) GetByID(ctx context.Context, id int32) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationRepo) GetByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationRepo) GetPendingByEmail(ctx context.Context, email string) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationRepo) SetStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) MarkClaimed(ctx context.Context, id, userID int32, claimedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, userID, claimedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) ResetExpiry(ctx context.Context, id int32, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, id, expiresAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockInvitationRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockInvitationRepo) IncrementSent(ctx context.Context, invitationID int32) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}
func (m *MockInvitationRepo) IncrementResent(ctx context.Context, invitationID int32) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}
func (m *MockInvitationRepo) GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error) {
	args := m.Called(ctx, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationAnalytics), args.Error(1)
}

// MockInviteCodeRepo
type MockInviteCodeRepo struct {
	mock.Mock
}

func (m *MockInviteCodeRepo) Create(ctx context.Context, code *domain.InviteCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
func (m *MockInviteCodeRepo) GetByCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}
func (m *MockInviteCodeRepo) GetByOwner(ctx context.Context, ownerID int32) (*domain.InviteCode, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}
func (m *MockInviteCodeRepo) RecordScan(ctx context.Context, code string, scannedAt time.Time) (*domain.InviteCode, error) {
	args := m.Called(ctx, code, scannedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteCode), args.Error(1)
}
func (m *MockInviteCodeRepo) Expire(ctx context.Context, ownerID int32, expiredAt time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, expiredAt)
	return args.Bool(0), args.Error(1)
}

// MockPingRepo
type MockPingRepo struct {
	mock.Mock
}

func (m *MockPingRepo) Create(ctx context.Context, ping *domain.Ping) error {
	args := m.Called(ctx, ping)
	return args.Error(0)
}
func (m *MockPingRepo) GetByID(ctx context.Context, id int32) (*domain.Ping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ping), args.Error(1)
}
func (m *MockPingRepo) GetByPair(ctx context.Context, senderID, receiverID int32) (*domain.Ping, error) {
	args := m.Called(ctx, senderID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ping), args.Error(1)
}
func (m *MockPingRepo) Reopen(ctx context.Context, senderID, receiverID int32, message string, expiresAt time.Time) (*domain.Ping, error) {
	args := m.Called(ctx, senderID, receiverID, message, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ping), args.Error(1)
}
func (m *MockPingRepo) SetStatus(ctx context.Context, id int32, from, to domain.PingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockPingRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int32), args.Error(1)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessageRepo) Update(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMessageRepo) CountDraftsByChurch(ctx context.Context, churchID int32) (int32, error) {
	args := m.Called(ctx, churchID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMessageRepo) Publish(ctx context.Context, id int32, publishedAt, expiresAt time.Time) (bool, error) {
	args := m.Called(ctx, id, publishedAt, expiresAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockMessageRepo) SetStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockMessageRepo) ListByChurch(ctx context.Context, churchID, page, pageSize int32) ([]domain.Message, int32, error) {
	args := m.Called(ctx, churchID, page, pageSize)
	return args.Get(0).([]domain.Message), args.Get(1).(int32), args.Error(2)
}
func (m *MockMessageRepo) ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]int32), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockActivityLogRepo
type MockActivityLogRepo struct {
	mock.Mock
}

func (m *MockActivityLogRepo) Create(ctx context.Context, entry *domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityLogRepo) ListByEntity(ctx context.Context, entityType string, entityID, limit int32) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, entityType, entityID, limit)
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

// MockInvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) InviteChurch(ctx context.Context, actor *domain.User, email, churchName string) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, actor, email, churchName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationService) ResendInvitation(ctx context.Context, actor *domain.User, invitationID int32) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, actor, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationService) CancelInvitation(ctx context.Context, actor *domain.User, invitationID int32) error {
	args := m.Called(ctx, actor, invitationID)
	return args.Error(0)
}
func (m *MockInvitationService) GetInvitation(ctx context.Context, invitationID int32) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationService) LookupByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}
func (m *MockInvitationService) GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error) {
	args := m.Called(ctx, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvitationAnalytics), args.Error(1)
}
func (m *MockInvitationService) ClaimForRegistration(ctx context.Context, token string, userID int32) (*domain.ChurchInvitation, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChurchInvitation), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendChurchInvitation(ctx context.Context, email, churchName, token string) error {
	args := m.Called(ctx, email, churchName, token)
	return args.Error(0)
}
func (m *MockEmailService) SendMembershipApproved(ctx context.Context, email, name, churchName string) error {
	args := m.Called(ctx, email, name, churchName)
	return args.Error(0)
}
func (m *MockEmailService) SendAccountReactivated(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendItemClaimed(ctx context.Context, email, itemTitle, claimerName string) error {
	args := m.Called(ctx, email, itemTitle, claimerName)
	return args.Error(0)
}
func (m *MockEmailService) SendItemCompleted(ctx context.Context, email, itemTitle string) error {
	args := m.Called(ctx, email, itemTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationDecision(ctx context.Context, email, churchName, status, reason string) error {
	args := m.Called(ctx, email, churchName, status, reason)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	args := m.Called(ctx, deviceToken, title, body, data)
	return args.Error(0)
}
