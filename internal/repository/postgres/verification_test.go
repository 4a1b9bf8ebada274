package postgres_test

import (
	"context"
	"testing"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestVerificationRepository_CreateVouch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVerificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		v := &domain.MemberVerification{RequestID: 3, VerifierID: 41}

		mock.ExpectQuery("INSERT INTO member_verifications").
			WithArgs(v.RequestID, v.VerifierID, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

		err := repo.CreateVouch(ctx, v)
		assert.NoError(t, err)
		assert.Equal(t, int32(12), v.ID)
	})

	t.Run("DuplicateVoterIsConflict", func(t *testing.T) {
		v := &domain.MemberVerification{RequestID: 3, VerifierID: 41}

		mock.ExpectQuery("INSERT INTO member_verifications").
			WithArgs(v.RequestID, v.VerifierID, sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.CreateVouch(ctx, v)
		assert.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})
}

func TestVerificationRepository_SetRequestStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVerificationRepository(db)
	ctx := context.Background()

	t.Run("OnlyOneWinner", func(t *testing.T) {
		mock.ExpectExec("UPDATE verification_requests SET").
			WithArgs(domain.VerificationRequestStatusApproved, sqlmock.AnyArg(), int32(3), domain.VerificationRequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		applied, err := repo.SetRequestStatus(ctx, 3, domain.VerificationRequestStatusPending, domain.VerificationRequestStatusApproved)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestVerificationRepository_CountVouches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVerificationRepository(db)
	ctx := context.Background()

	t.Run("DistinctVoters", func(t *testing.T) {
		mock.ExpectQuery("SELECT count\\(DISTINCT verifier_id\\) FROM member_verifications").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountVouches(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), count)
	})
}

func TestVerificationRepository_ListPendingForVerifier(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVerificationRepository(db)
	ctx := context.Background()

	t.Run("ExcludesOwnAndAlreadyVouched", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "church_id", "status", "notes", "created_on", "updated_on"}).
			AddRow(3, 40, 1, domain.VerificationRequestStatusPending, "new in town", now, now)

		mock.ExpectQuery("SELECT (.+) FROM verification_requests vr").
			WithArgs(int32(1), domain.VerificationRequestStatusPending, int32(41)).
			WillReturnRows(rows)

		reqs, err := repo.ListPendingForVerifier(ctx, 1, 41)
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, int32(40), reqs[0].UserID)
	})
}
