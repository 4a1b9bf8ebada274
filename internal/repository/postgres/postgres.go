package postgres

import (
	"database/sql"
	"errors"

	"churchshare-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ChurchRepository
	repository.ItemRepository
	repository.MemberItemRequestRepository
	repository.VerificationRepository
	repository.InvitationRepository
	repository.InviteCodeRepository
	repository.PingRepository
	repository.MessageRepository
	repository.NotificationRepository
	repository.ActivityLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                          db,
		UserRepository:              NewUserRepository(db),
		ChurchRepository:            NewChurchRepository(db),
		ItemRepository:              NewItemRepository(db),
		MemberItemRequestRepository: NewMemberItemRequestRepository(db),
		VerificationRepository:      NewVerificationRepository(db),
		InvitationRepository:        NewInvitationRepository(db),
		InviteCodeRepository:        NewInviteCodeRepository(db),
		PingRepository:              NewPingRepository(db),
		MessageRepository:           NewMessageRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
		ActivityLogRepository:       NewActivityLogRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
