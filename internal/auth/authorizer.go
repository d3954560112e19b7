package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/events"
)

// Authorizer answers "does identity X hold permission Y". Resolution is a
// fresh three-step lookup on every call: identity to role, code to
// permission, then the role-permission link. Roles and permissions are
// low-cardinality seed data, so no cache sits in front of the store.
type Authorizer struct {
	store        AuthorizationStore
	bus          EventPublisher
	logger       *slog.Logger
	storeTimeout time.Duration
}

func NewAuthorizer(store AuthorizationStore, bus EventPublisher, logger *slog.Logger, storeTimeout time.Duration) *Authorizer {
	return &Authorizer{
		store:        store,
		bus:          bus,
		logger:       logger,
		storeTimeout: storeTimeout,
	}
}

// HasPermission reports whether the identity's role carries the permission
// code. Every domain miss is a plain denial: empty input, no role, an
// unknown code, and a missing grant all return (false, nil). The error
// return is reserved for store failures.
func (a *Authorizer) HasPermission(ctx context.Context, identityID, permissionCode string) (bool, error) {
	if identityID == "" || permissionCode == "" {
		return false, nil
	}

	ctx, cancel := internal.WithTimeout(ctx, a.storeTimeout)
	defer cancel()

	roleID, err := a.store.RoleIDForIdentity(ctx, identityID)
	if err != nil {
		return false, err
	}
	if roleID == "" {
		return false, nil
	}

	permissionID, err := a.store.PermissionIDForCode(ctx, permissionCode)
	if err != nil {
		return false, err
	}
	if permissionID == "" {
		return false, nil
	}

	return a.store.RoleHasPermission(ctx, roleID, permissionID)
}

// RequirePermission is the asserting form of HasPermission: nil when
// granted, a forbidden error naming the identity and permission otherwise.
// Denials are logged and published for the audit trail; the names never
// reach the denied client beyond the generic forbidden response.
func (a *Authorizer) RequirePermission(ctx context.Context, identityID, permissionCode string) error {
	granted, err := a.HasPermission(ctx, identityID, permissionCode)
	if err != nil {
		a.logger.ErrorContext(ctx, "permission check failed",
			"identity_id", identityID,
			"permission", permissionCode,
			"error", err)
		return internal.NewInternalError("permission check failed", err)
	}

	if !granted {
		a.logger.WarnContext(ctx, "permission denied",
			"identity_id", identityID,
			"required_permission", permissionCode)
		if a.bus != nil {
			_ = a.bus.Publish(ctx, events.NewPermissionDeniedEvent(identityID, permissionCode))
		}
		return internal.NewForbiddenError("permission denied", internal.ErrCodePermissionDenied).
			WithDetails(map[string]string{
				"identity_id":     identityID,
				"permission_code": permissionCode,
			})
	}

	return nil
}
