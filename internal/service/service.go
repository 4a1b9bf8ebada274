package service

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, inviteCode string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.Church, error)
	UpdateProfile(ctx context.Context, userID int32, name, deviceToken string) error
}

type ChurchService interface {
	RegisterChurch(ctx context.Context, leadID int32, invitationToken string, church *domain.Church) (*domain.Church, error)
	ApproveApplication(ctx context.Context, actor *domain.User, churchID int32) error
	RejectApplication(ctx context.Context, actor *domain.User, churchID int32, reason string) error
	GetChurch(ctx context.Context, id int32) (*domain.Church, error)
	ListChurches(ctx context.Context) ([]domain.Church, error)
	UpdateChurch(ctx context.Context, actor *domain.User, church *domain.Church) error
}

type VerificationService interface {
	RequestToJoin(ctx context.Context, userID, churchID int32, notes string) (*domain.VerificationRequest, error)
	PendingQueue(ctx context.Context, verifierID int32) ([]domain.VerificationRequest, error)
	Vouch(ctx context.Context, verifierID, requesterID, churchID int32) (*domain.VerificationProgress, error)
	Progress(ctx context.Context, requesterID, churchID int32) (*domain.VerificationProgress, error)
	RejectRequest(ctx context.Context, actor *domain.User, requestID int32, reason string) error
}

type ItemService interface {
	AddItem(ctx context.Context, donorID int32, item *domain.Item) error
	GetItem(ctx context.Context, id int32) (*domain.Item, error)
	ListChurchItems(ctx context.Context, churchID, page, pageSize int32) ([]domain.Item, int32, error)
	ClaimItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error)
	UnclaimItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error)
	CompleteItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error)
	SetOfferToMembers(ctx context.Context, actorID, itemID int32, offer bool) (*domain.Item, []string, error)
	DeleteItem(ctx context.Context, actor *domain.User, itemID int32) error

	RequestItem(ctx context.Context, memberID, itemID int32, note string) (*domain.MemberItemRequest, error)
	MarkRequestReceived(ctx context.Context, actorID, requestID int32) (*domain.MemberItemRequest, error)
	CancelRequest(ctx context.Context, memberID, requestID int32) error
}

type MessageService interface {
	CreateMessage(ctx context.Context, authorID, churchID int32, title, body string, scheduledFor *time.Time) (*domain.Message, error)
	CreateUserShare(ctx context.Context, authorID, churchID int32, title, body string) (*domain.Message, error)
	PublishMessage(ctx context.Context, actorID, messageID int32) (*domain.Message, error)
	ArchiveMessage(ctx context.Context, actorID, messageID int32) error
	DeleteMessage(ctx context.Context, actor *domain.User, messageID int32) error
	GetMessage(ctx context.Context, id int32) (*domain.Message, error)
	ListChurchMessages(ctx context.Context, churchID, page, pageSize int32) ([]domain.Message, int32, error)
}

type InvitationService interface {
	InviteChurch(ctx context.Context, actor *domain.User, email, churchName string) (*domain.ChurchInvitation, error)
	ResendInvitation(ctx context.Context, actor *domain.User, invitationID int32) (*domain.ChurchInvitation, error)
	CancelInvitation(ctx context.Context, actor *domain.User, invitationID int32) error
	GetInvitation(ctx context.Context, invitationID int32) (*domain.ChurchInvitation, error)
	LookupByToken(ctx context.Context, token string) (*domain.ChurchInvitation, error)
	GetAnalytics(ctx context.Context, invitationID int32) (*domain.InvitationAnalytics, error)
	ClaimForRegistration(ctx context.Context, token string, userID int32) (*domain.ChurchInvitation, error)
}

type InviteCodeService interface {
	GetOrCreate(ctx context.Context, ownerID int32) (*domain.InviteCode, error)
	Scan(ctx context.Context, code string) (*domain.InviteCode, error)
	Expire(ctx context.Context, ownerID int32) error
}

type PingService interface {
	SendPing(ctx context.Context, senderID, receiverID int32, message string) (*domain.Ping, error)
	AcceptPing(ctx context.Context, receiverID, pingID int32) (*domain.Ping, error)
	RejectPing(ctx context.Context, receiverID, pingID int32) (*domain.Ping, error)
	GetPing(ctx context.Context, userID, pingID int32) (*domain.Ping, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendChurchInvitation(ctx context.Context, email, churchName, token string) error
	SendMembershipApproved(ctx context.Context, email, name, churchName string) error
	SendAccountReactivated(ctx context.Context, email, name string) error
	SendItemClaimed(ctx context.Context, email, itemTitle, claimerName string) error
	SendItemCompleted(ctx context.Context, email, itemTitle string) error
	SendApplicationDecision(ctx context.Context, email, churchName, status, reason string) error
}

// PushService delivers a push notification to one device. Failures are
// logged by callers and never block the originating state transition.
type PushService interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}
