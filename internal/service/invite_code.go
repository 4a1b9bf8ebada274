package service

import (
	"context"
	"strings"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"

	"github.com/google/uuid"
)

type inviteCodeService struct {
	codeRepo repository.InviteCodeRepository
	userRepo repository.UserRepository
}

func NewInviteCodeService(codeRepo repository.InviteCodeRepository, userRepo repository.UserRepository) InviteCodeService {
	return &inviteCodeService{codeRepo: codeRepo, userRepo: userRepo}
}

// GetOrCreate returns the owner's live referral code, minting one when
// none exists or the previous code was expired.
func (s *inviteCodeService) GetOrCreate(ctx context.Context, ownerID int32) (*domain.InviteCode, error) {
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	code, err := s.codeRepo.GetByOwner(ctx, ownerID)
	if err == nil && code.Usable(time.Now()) {
		return code, nil
	}
	if err != nil && domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	fresh := &domain.InviteCode{
		OwnerID: ownerID,
		Code:    newReferralCode(),
	}
	if err := s.codeRepo.Create(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Scan records one scan of the code and returns the updated counters.
// Scanning an expired code fails; the count never moves for dead codes.
func (s *inviteCodeService) Scan(ctx context.Context, code string) (*domain.InviteCode, error) {
	existing, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !existing.Usable(now) {
		return nil, domain.InvalidState("invite code has expired")
	}
	return s.codeRepo.RecordScan(ctx, code, now)
}

// Expire retires the owner's current code by stamping its expiry to
// now. The row and its scan count survive for analytics.
func (s *inviteCodeService) Expire(ctx context.Context, ownerID int32) error {
	applied, err := s.codeRepo.Expire(ctx, ownerID, time.Now())
	if err != nil {
		return err
	}
	if !applied {
		return domain.NotFound("no active invite code for this user")
	}
	return nil
}

// newReferralCode derives a short human-shareable code from a UUID.
func newReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
