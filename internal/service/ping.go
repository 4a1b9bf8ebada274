package service

import (
	"context"
	"fmt"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository"
)

type pingService struct {
	pingRepo repository.PingRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	pushSvc  PushService
}

func NewPingService(
	pingRepo repository.PingRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	pushSvc PushService,
) PingService {
	return &pingService{
		pingRepo: pingRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		pushSvc:  pushSvc,
	}
}

// SendPing opens a contact request toward another verified member of
// the same church. A live PENDING or ACCEPTED ping for the same ordered
// pair blocks a duplicate; an expired one does not.
func (s *pingService) SendPing(ctx context.Context, senderID, receiverID int32, message string) (*domain.Ping, error) {
	if senderID == receiverID {
		return nil, domain.Validation("cannot ping yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if sender.MembershipStatus != domain.MembershipStatusVerified ||
		receiver.MembershipStatus != domain.MembershipStatusVerified {
		return nil, domain.Forbidden("pings require verified membership on both sides")
	}
	if sender.ChurchID == nil || receiver.ChurchID == nil || *sender.ChurchID != *receiver.ChurchID {
		return nil, domain.Forbidden("pings are limited to members of the same church")
	}

	existing, err := s.pingRepo.GetByPair(ctx, senderID, receiverID)
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	if err == nil {
		existing = s.applyLazyExpiry(ctx, existing)
		if existing.Status == domain.PingStatusPending || existing.Status == domain.PingStatusAccepted {
			return nil, domain.Conflict("a ping to this member is already %s", existing.Status)
		}
		// One row per ordered pair: a terminal ping is revived in
		// place rather than inserted alongside, which the unique
		// pair index would refuse.
		ping, err := s.pingRepo.Reopen(ctx, senderID, receiverID, message, time.Now().Add(domain.PingWindow))
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, domain.Conflict("a ping to this member is already pending")
			}
			return nil, err
		}
		s.notifyReceiver(ctx, sender, receiver, ping)
		return ping, nil
	}

	ping := &domain.Ping{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.PingStatusPending,
		Message:    message,
		ExpiresAt:  time.Now().Add(domain.PingWindow),
	}
	if err := s.pingRepo.Create(ctx, ping); err != nil {
		return nil, err
	}
	s.notifyReceiver(ctx, sender, receiver, ping)
	return ping, nil
}

func (s *pingService) notifyReceiver(ctx context.Context, sender, receiver *domain.User, ping *domain.Ping) {
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  receiver.ID,
		Title:   "New ping",
		Message: fmt.Sprintf("%s wants to connect", sender.Name),
		Attributes: map[string]string{
			"type":    "PING_RECEIVED",
			"ping_id": fmt.Sprintf("%d", ping.ID),
		},
	})
	if receiver.DeviceToken != "" {
		if err := s.pushSvc.Send(ctx, receiver.DeviceToken, "New ping", fmt.Sprintf("%s wants to connect", sender.Name), map[string]string{"type": "PING_RECEIVED"}); err != nil {
			logger.Warn("Push delivery failed", "user_id", receiver.ID, "error", err)
		}
	}
}

// AcceptPing answers a pending ping. Only the receiver may answer, and
// only while the window is open.
func (s *pingService) AcceptPing(ctx context.Context, receiverID, pingID int32) (*domain.Ping, error) {
	return s.answer(ctx, receiverID, pingID, domain.PingStatusAccepted)
}

func (s *pingService) RejectPing(ctx context.Context, receiverID, pingID int32) (*domain.Ping, error) {
	return s.answer(ctx, receiverID, pingID, domain.PingStatusRejected)
}

func (s *pingService) answer(ctx context.Context, receiverID, pingID int32, to domain.PingStatus) (*domain.Ping, error) {
	ping, err := s.pingRepo.GetByID(ctx, pingID)
	if err != nil {
		return nil, err
	}
	if ping.ReceiverID != receiverID {
		return nil, domain.Forbidden("only the receiver may answer a ping")
	}

	ping = s.applyLazyExpiry(ctx, ping)
	if ping.Status != domain.PingStatusPending {
		return nil, domain.InvalidState("ping is %s", ping.Status)
	}

	applied, err := s.pingRepo.SetStatus(ctx, pingID, domain.PingStatusPending, to)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("ping is no longer pending")
	}
	ping.Status = to

	if to == domain.PingStatusAccepted {
		if sender, err := s.userRepo.GetByID(ctx, ping.SenderID); err == nil {
			receiver, _ := s.userRepo.GetByID(ctx, receiverID)
			name := ""
			if receiver != nil {
				name = receiver.Name
			}
			_ = s.noteRepo.Create(ctx, &domain.Notification{
				UserID:  sender.ID,
				Title:   "Ping accepted",
				Message: fmt.Sprintf("%s accepted your ping", name),
				Attributes: map[string]string{
					"type":    "PING_ACCEPTED",
					"ping_id": fmt.Sprintf("%d", pingID),
				},
			})
		}
	}
	return ping, nil
}

// GetPing returns a ping visible to either participant, with read-time
// expiry applied.
func (s *pingService) GetPing(ctx context.Context, userID, pingID int32) (*domain.Ping, error) {
	ping, err := s.pingRepo.GetByID(ctx, pingID)
	if err != nil {
		return nil, err
	}
	if ping.SenderID != userID && ping.ReceiverID != userID {
		return nil, domain.Forbidden("ping belongs to other members")
	}
	return s.applyLazyExpiry(ctx, ping), nil
}

func (s *pingService) applyLazyExpiry(ctx context.Context, ping *domain.Ping) *domain.Ping {
	if ping.Status != domain.PingStatusPending || !domain.IsExpired(ping.ExpiresAt, time.Now()) {
		return ping
	}
	if _, err := s.pingRepo.SetStatus(ctx, ping.ID, domain.PingStatusPending, domain.PingStatusExpired); err != nil {
		logger.Warn("Lazy expiry write failed", "ping_id", ping.ID, "error", err)
	}
	ping.Status = domain.PingStatusExpired
	return ping
}
