package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository"
	"churchshare-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	codeRepo repository.InviteCodeRepository
	tokens   security.TokenManager
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.InviteCodeRepository,
	tokens security.TokenManager,
) AuthService {
	return &authService{
		userRepo: userRepo,
		codeRepo: codeRepo,
		tokens:   tokens,
	}
}

// Register creates an account and returns it with a signed access
// token. A referral code, when presented, must still be usable; it
// links the inviter and bumps their completed-invite counter.
func (s *authService) Register(ctx context.Context, name, email, password, inviteCode string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, "", domain.Validation("name and email are required")
	}
	if len(password) < 8 {
		return nil, "", domain.Validation("password must be at least 8 characters")
	}

	var inviter *domain.User
	if inviteCode != "" {
		code, err := s.codeRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, "", domain.Validation("unknown invite code")
			}
			return nil, "", err
		}
		if !code.Usable(time.Now()) {
			return nil, "", domain.InvalidState("invite code has expired")
		}
		inviter, err = s.userRepo.GetByID(ctx, code.OwnerID)
		if err != nil {
			return nil, "", err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:            email,
		PasswordHash:     string(hash),
		Name:             name,
		Role:             domain.UserRoleUser,
		MembershipStatus: domain.MembershipStatusNone,
	}
	if inviter != nil {
		user.InviterID = &inviter.ID
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if inviter != nil {
		if err := s.userRepo.IncrementInvitesCompleted(ctx, inviter.ID); err != nil {
			logger.Warn("Failed to credit inviter", "inviter_id", inviter.ID, "error", err)
		}
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, "", domain.Unauthenticated("invalid email or password")
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.Unauthenticated("invalid email or password")
	}
	if user.Disabled {
		return nil, "", domain.Forbidden("account is disabled")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}
