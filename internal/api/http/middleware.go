package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/repository"
	"churchshare-backend/internal/security"
)

// AuthMiddleware validates bearer tokens and resolves the acting user.
type AuthMiddleware struct {
	tokens   security.TokenManager
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

// Require wraps a handler so it only runs with a valid access token.
// The full user row is loaded per request; role and membership checks
// downstream always see current state, not stale claims.
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearer(r)
		if err != nil {
			writeError(w, err)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, domain.Unauthenticated("invalid token"))
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, domain.Unauthenticated("unknown user"))
			return
		}

		next(w, r.WithContext(WithActor(r.Context(), user)))
	}
}

func extractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", domain.Unauthenticated("authorization token is not provided")
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:], nil
	}
	return header, nil
}

// CronMiddleware guards the externally triggered sweep endpoints with a
// shared secret header.
type CronMiddleware struct {
	sharedSecret string
}

func NewCronMiddleware(sharedSecret string) *CronMiddleware {
	return &CronMiddleware{sharedSecret: sharedSecret}
}

func (m *CronMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := r.Header.Get("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(m.sharedSecret)) != 1 {
			writeError(w, domain.Unauthenticated("invalid cron secret"))
			return
		}
		next(w, r)
	}
}
