package auth

import (
	"context"
	"errors"

	"github.com/Skenwise/Loan-Management-System/internal/core/events"
	"github.com/golang-jwt/jwt/v5"
)

// CredentialRecord is the slice of an identity the authentication flow
// needs: enough to verify a password and mint a token, nothing more.
type CredentialRecord struct {
	ID           string
	Username     string
	PasswordHash string
}

// CredentialStore is the narrow lookup surface the auth service consumes.
// A lookup miss is (nil, nil); the error return carries store failures only.
type CredentialStore interface {
	GetCredentialByUsername(ctx context.Context, username string) (*CredentialRecord, error)
	TouchLastLogin(ctx context.Context, identityID string) error
}

// AuthorizationStore resolves the three lookups behind a permission check.
// Misses come back as zero values with a nil error so the evaluator can
// fail closed without treating them as faults.
type AuthorizationStore interface {
	RoleIDForIdentity(ctx context.Context, identityID string) (string, error)
	PermissionIDForCode(ctx context.Context, code string) (string, error)
	RoleHasPermission(ctx context.Context, roleID, permissionID string) (bool, error)
}

// TokenGenerator creates and validates session tokens.
type TokenGenerator interface {
	Issue(identityID, username string) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}

// EventPublisher is what the auth flow needs from the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ServiceAPI is the surface the HTTP handler consumes.
type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	VerifySession(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a session token.
type Claims struct {
	IdentityID string `json:"identity_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
