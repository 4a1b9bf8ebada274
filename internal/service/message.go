package service

import (
	"context"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
)

type messageService struct {
	msgRepo    repository.MessageRepository
	churchRepo repository.ChurchRepository
	userRepo   repository.UserRepository
}

func NewMessageService(
	msgRepo repository.MessageRepository,
	churchRepo repository.ChurchRepository,
	userRepo repository.UserRepository,
) MessageService {
	return &messageService{
		msgRepo:    msgRepo,
		churchRepo: churchRepo,
		userRepo:   userRepo,
	}
}

// CreateMessage opens a DRAFT (or SCHEDULED when scheduledFor is set).
// The per-church quota on concurrent drafts is checked up front so a
// rejected creation has no side effects.
func (s *messageService) CreateMessage(ctx context.Context, authorID, churchID int32, title, body string, scheduledFor *time.Time) (*domain.Message, error) {
	if title == "" {
		return nil, domain.Validation("message title is required")
	}
	church, err := s.churchRepo.GetByID(ctx, churchID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if church.LeadContactID != authorID && (author.ChurchID == nil || *author.ChurchID != churchID) {
		return nil, domain.Forbidden("author does not belong to this church")
	}

	count, err := s.msgRepo.CountDraftsByChurch(ctx, churchID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxConcurrentDrafts {
		return nil, domain.InvalidState("church already has %d unpublished messages", domain.MaxConcurrentDrafts)
	}

	status := domain.MessageStatusDraft
	if scheduledFor != nil {
		status = domain.MessageStatusScheduled
	}
	msg := &domain.Message{
		ChurchID:         churchID,
		AuthorID:         authorID,
		Type:             domain.MessageTypeChurchPost,
		Title:            title,
		Body:             body,
		Status:           status,
		ModerationStatus: domain.ModerationStatusPending,
		ScheduledFor:     scheduledFor,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateUserShare publishes immediately: user posts skip the draft
// pipeline and are auto-approved, subject to the same 24h lifetime.
func (s *messageService) CreateUserShare(ctx context.Context, authorID, churchID int32, title, body string) (*domain.Message, error) {
	if title == "" {
		return nil, domain.Validation("message title is required")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.ChurchID == nil || *author.ChurchID != churchID || author.MembershipStatus != domain.MembershipStatusVerified {
		return nil, domain.Forbidden("only verified members may share posts")
	}

	now := time.Now()
	expires := now.Add(domain.MessageLifetime)
	msg := &domain.Message{
		ChurchID:         churchID,
		AuthorID:         authorID,
		Type:             domain.MessageTypeUserShare,
		Title:            title,
		Body:             body,
		Status:           domain.MessageStatusPublished,
		ModerationStatus: domain.ModerationStatusAutoApproved,
		PublishedAt:      &now,
		ExpiresAt:        &expires,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) PublishMessage(ctx context.Context, actorID, messageID int32) (*domain.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	church, err := s.churchRepo.GetByID(ctx, msg.ChurchID)
	if err != nil {
		return nil, err
	}
	if msg.AuthorID != actorID && church.LeadContactID != actorID {
		return nil, domain.Forbidden("only the author or church lead may publish")
	}

	now := time.Now()
	applied, err := s.msgRepo.Publish(ctx, messageID, now, now.Add(domain.MessageLifetime))
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("message is not in DRAFT or SCHEDULED state")
	}
	return s.msgRepo.GetByID(ctx, messageID)
}

func (s *messageService) ArchiveMessage(ctx context.Context, actorID, messageID int32) error {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	church, err := s.churchRepo.GetByID(ctx, msg.ChurchID)
	if err != nil {
		return err
	}
	if msg.AuthorID != actorID && church.LeadContactID != actorID {
		return domain.Forbidden("only the author or church lead may archive")
	}

	applied, err := s.msgRepo.SetStatus(ctx, messageID, domain.MessageStatusPublished, domain.MessageStatusArchived)
	if err != nil {
		return err
	}
	if !applied {
		return domain.InvalidState("only published messages can be archived")
	}
	return nil
}

// DeleteMessage removes a message. USER_SHARE posts are deletable only
// by the author's church lead contact or an admin.
func (s *messageService) DeleteMessage(ctx context.Context, actor *domain.User, messageID int32) error {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	church, err := s.churchRepo.GetByID(ctx, msg.ChurchID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionMessageDelete, church); err != nil {
		return err
	}
	return s.msgRepo.Delete(ctx, messageID)
}

// GetMessage applies the read-time expiry: a published message past its
// deadline reads as EXPIRED even before the sweep has run.
func (s *messageService) GetMessage(ctx context.Context, id int32) (*domain.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if msg.EffectiveStatus(now) == domain.MessageStatusExpired && msg.Status == domain.MessageStatusPublished {
		// Best effort; the sweep will settle rows this write loses on.
		if _, err := s.msgRepo.SetStatus(ctx, id, domain.MessageStatusPublished, domain.MessageStatusExpired); err == nil {
			msg.Status = domain.MessageStatusExpired
		} else {
			msg.Status = msg.EffectiveStatus(now)
		}
	}
	return msg, nil
}

func (s *messageService) ListChurchMessages(ctx context.Context, churchID, page, pageSize int32) ([]domain.Message, int32, error) {
	msgs, count, err := s.msgRepo.ListByChurch(ctx, churchID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	for i := range msgs {
		msgs[i].Status = msgs[i].EffectiveStatus(now)
	}
	return msgs, count, nil
}
