package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/events"
)

type Service struct {
	credentials  CredentialStore
	tokens       TokenGenerator
	passwords    *PasswordManager
	bus          EventPublisher
	logger       *slog.Logger
	storeTimeout time.Duration
}

func NewService(credentials CredentialStore, tokens TokenGenerator, passwords *PasswordManager, bus EventPublisher, logger *slog.Logger, storeTimeout time.Duration) *Service {
	return &Service{
		credentials:  credentials,
		tokens:       tokens,
		passwords:    passwords,
		bus:          bus,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

// Authenticate exchanges a username and password for a signed token.
// An unknown username and a wrong password produce the same error and
// nearly the same work, so responses do not betray which usernames exist.
// The real cause is published to the event bus for the audit trail only.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lookupCtx, cancel := internal.WithTimeout(ctx, s.storeTimeout)
	credential, err := s.credentials.GetCredentialByUsername(lookupCtx, dto.Username)
	cancel()
	if err != nil {
		s.logger.ErrorContext(ctx, "credential lookup failed", "error", err)
		return nil, internal.NewInternalError("credential lookup failed", err)
	}

	if credential == nil {
		// Verify against an empty hash so the miss path still pays a
		// bcrypt comparison and stays timing-close to the hit path.
		s.passwords.VerifyPassword(dto.Password, "")
		s.failLogin(ctx, dto.Username, "unknown username")
		return nil, internal.ErrInvalidCredentials
	}

	if !s.passwords.VerifyPassword(dto.Password, credential.PasswordHash) {
		s.failLogin(ctx, dto.Username, "wrong password")
		return nil, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(credential.ID, credential.Username)
	if err != nil {
		s.logger.ErrorContext(ctx, "token issuance failed", "error", err)
		return nil, internal.NewInternalError("token issuance failed", err)
	}

	touchCtx, cancel := internal.WithTimeout(ctx, s.storeTimeout)
	if err := s.credentials.TouchLastLogin(touchCtx, credential.ID); err != nil {
		// Login stamping is bookkeeping. A failure is logged, never
		// surfaced to a caller holding a valid token.
		s.logger.WarnContext(ctx, "failed to update last login", "identity_id", credential.ID, "error", err)
	}
	cancel()

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewLoginSucceededEvent(credential.ID, credential.Username))
	}
	s.logger.InfoContext(ctx, "authentication succeeded", "identity_id", credential.ID)

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

// VerifySession validates a bearer token and returns its claims. Expired
// and malformed tokens are told apart in the logs but collapse into one
// authentication failure at the boundary.
func (s *Service) VerifySession(ctx context.Context, accessToken string) (*Claims, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		switch err {
		case ErrTokenExpired:
			s.logger.WarnContext(ctx, "session token expired")
		default:
			s.logger.WarnContext(ctx, "session token invalid")
		}
		return nil, internal.ErrAuthenticationFailed
	}
	return claims, nil
}

func (s *Service) failLogin(ctx context.Context, username, reason string) {
	s.logger.WarnContext(ctx, "authentication failed", "reason", reason)
	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewLoginFailedEvent(username, reason))
	}
}
