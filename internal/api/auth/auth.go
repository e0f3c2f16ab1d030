package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/store"
	"github.com/gallerium/marketplace-v2/internal/store/schema"
)

var (
	// ErrUnauthorized covers every login failure: unknown admin, stale
	// challenge, bad signature. Callers get one error so responses do not
	// leak which check failed.
	ErrUnauthorized = errors.New("unauthorized")
)

// SignatureVerifier checks that signature was produced by address over message
//
//go:generate mockgen -source=auth.go -destination=../../mocks/auth.go -package=mocks -mock_names=SignatureVerifier=MockSignatureVerifier
type SignatureVerifier interface {
	Verify(address, message, signature string) error
}

// Config holds admin authentication configuration
type Config struct {
	// JWTSecret signs session tokens (HS256)
	JWTSecret string
	// TokenTTL is the session token lifetime
	TokenTTL time.Duration
	// ChallengeWindow bounds how old a signed login challenge may be
	ChallengeWindow time.Duration
	// AdminAddresses are the addresses allowed to log in
	AdminAddresses []string
}

// Service issues admin session tokens against signed address challenges
type Service struct {
	config   Config
	store    store.Store
	verifier SignatureVerifier
	clock    adapter.Clock
	admins   map[string]bool
}

// NewService creates an admin auth service
func NewService(cfg Config, st store.Store, verifier SignatureVerifier, clock adapter.Clock) *Service {
	admins := make(map[string]bool, len(cfg.AdminAddresses))
	for _, addr := range cfg.AdminAddresses {
		if addr != "" {
			admins[strings.ToLower(addr)] = true
		}
	}
	return &Service{
		config:   cfg,
		store:    st,
		verifier: verifier,
		clock:    clock,
		admins:   admins,
	}
}

// ChallengeMessage is the exact text an admin signs to log in
func ChallengeMessage(address string, timestamp int64) string {
	return fmt.Sprintf("marketplace-admin-login:%s:%d", strings.ToLower(address), timestamp)
}

// Session is an issued admin session
type Session struct {
	Token     string
	Address   string
	ExpiresAt time.Time
}

// Login verifies a signed challenge and issues a bearer token. The challenge
// timestamp must fall within the configured window to stop replays.
func (s *Service) Login(ctx context.Context, address string, timestamp int64, signature string) (*Session, error) {
	normalized := strings.ToLower(address)
	if !s.admins[normalized] {
		return nil, ErrUnauthorized
	}

	now := s.clock.Now()
	issued := time.Unix(timestamp, 0)
	if issued.After(now.Add(time.Minute)) || now.Sub(issued) > s.config.ChallengeWindow {
		return nil, fmt.Errorf("%w: challenge expired", ErrUnauthorized)
	}

	if err := s.verifier.Verify(address, ChallengeMessage(address, timestamp), signature); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}

	expiresAt := now.Add(s.config.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   normalized,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	// Sessions are kept for audit, expiry is enforced by the token itself
	if err := s.store.CreateAdminSession(ctx, &schema.AdminSession{
		Address:   normalized,
		Token:     token,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to record admin session: %w", err)
	}

	return &Session{
		Token:     token,
		Address:   normalized,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken parses a bearer token and returns the admin address it
// was issued to
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrUnauthorized
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.clock.Now()) {
		return "", fmt.Errorf("%w: token expired", ErrUnauthorized)
	}
	return claims.Subject, nil
}
