package repository

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"
)

// Conditional mutations return false when the guarded WHERE clause
// matched no row, so services can distinguish a lost state race from a
// storage failure.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetMembershipRequested(ctx context.Context, userID, churchID int32, requestedAt time.Time) error
	SetVerifiedMembership(ctx context.Context, userID, churchID int32, verifiedAt time.Time) error
	ClearMembership(ctx context.Context, userID int32) error
	IncrementInvitesCompleted(ctx context.Context, userID int32) error
	SetDisabled(ctx context.Context, userID int32, disabled bool) error
}

type ChurchRepository interface {
	Create(ctx context.Context, church *domain.Church) error
	GetByID(ctx context.Context, id int32) (*domain.Church, error)
	GetByLeadContact(ctx context.Context, leadContactID int32) (*domain.Church, error)
	List(ctx context.Context) ([]domain.Church, error)
	Update(ctx context.Context, church *domain.Church) error
	SetApplicationStatus(ctx context.Context, id int32, status domain.ApplicationStatus) error
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int32) error
	ListByChurch(ctx context.Context, churchID int32, page, pageSize int32) ([]domain.Item, int32, error)
	Claim(ctx context.Context, itemID, claimerID int32, claimedAt time.Time) (bool, error)
	Unclaim(ctx context.Context, itemID, claimerID int32) (bool, error)
	Complete(ctx context.Context, itemID int32, completedAt time.Time) (bool, error)
	SetOfferToMembers(ctx context.Context, itemID int32, offer bool) error
}

type MemberItemRequestRepository interface {
	Create(ctx context.Context, req *domain.MemberItemRequest) error
	GetByID(ctx context.Context, id int32) (*domain.MemberItemRequest, error)
	CountActiveByMember(ctx context.Context, memberID int32) (int32, error)
	ListActiveByItem(ctx context.Context, itemID int32) ([]domain.MemberItemRequest, error)
	UpdateStatus(ctx context.Context, id int32, from, to domain.MemberItemRequestStatus) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error)
}

type VerificationRepository interface {
	CreateRequest(ctx context.Context, req *domain.VerificationRequest) error
	GetRequestByID(ctx context.Context, id int32) (*domain.VerificationRequest, error)
	GetPendingRequest(ctx context.Context, userID, churchID int32) (*domain.VerificationRequest, error)
	ListPendingForVerifier(ctx context.Context, churchID, verifierID int32) ([]domain.VerificationRequest, error)
	SetRequestStatus(ctx context.Context, id int32, from, to domain.VerificationRequestStatus) (bool, error)
	CreateVouch(ctx context.Context, vouch *domain.MemberVerification) error
	CountVouches(ctx context.Context, requestID int32) (int32, error)
	ListVerifierNames(ctx context.Context, requestID int32) ([]string, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.ChurchInvitation) error
	GetByID(ctx context.Context, id int32) (*domain.ChurchInvitation, error)
	GetByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error)
	GetPendingByEmail(ctx context.Context, email string) (*domain.ChurchInvitation, error)
	SetStatus(ctx context.Context, id int32, from, to domain.InvitationStatus) (bool, error)
	MarkClaimed(ctx context.Context, id, userID int32, claimedAt time.Time) (bool, error)
	ResetExpiry(ctx context.Context, id int32, expiresAt time.Time) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error)
	IncrementSent(ctx context.Context, invitationID int32) error
	IncrementResent(ctx context.Context, invitationID int32) error
	GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error)
}

type InviteCodeRepository interface {
	Create(ctx context.Context, code *domain.InviteCode) error
	GetByCode(ctx context.Context, code string) (*domain.InviteCode, error)
	GetByOwner(ctx context.Context, ownerID int32) (*domain.InviteCode, error)
	RecordScan(ctx context.Context, code string, scannedAt time.Time) (*domain.InviteCode, error)
	Expire(ctx context.Context, ownerID int32, expiredAt time.Time) (bool, error)
}

type PingRepository interface {
	Create(ctx context.Context, ping *domain.Ping) error
	GetByID(ctx context.Context, id int32) (*domain.Ping, error)
	GetByPair(ctx context.Context, senderID, receiverID int32) (*domain.Ping, error)
	Reopen(ctx context.Context, senderID, receiverID int32, message string, expiresAt time.Time) (*domain.Ping, error)
	SetStatus(ctx context.Context, id int32, from, to domain.PingStatus) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int32) (*domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id int32) error
	CountDraftsByChurch(ctx context.Context, churchID int32) (int32, error)
	Publish(ctx context.Context, id int32, publishedAt, expiresAt time.Time) (bool, error)
	SetStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error)
	ListByChurch(ctx context.Context, churchID int32, page, pageSize int32) ([]domain.Message, int32, error)
	ExpireOverdue(ctx context.Context, now time.Time) ([]int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	ListByEntity(ctx context.Context, entityType string, entityID, limit int32) ([]domain.ActivityLog, error)
}
