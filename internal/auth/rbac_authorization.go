package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Skenwise/Loan-Management-System/internal"
)

// PermissionEvaluator resolves whether an identity currently holds a
// permission. Implementations go to the store on every call; a role change
// takes effect on the very next request.
type PermissionEvaluator interface {
	HasPermission(ctx context.Context, identityID, permissionCode string) (bool, error)
	RequirePermission(ctx context.Context, identityID, permissionCode string) error
}

type RBACAuthorization struct {
	evaluator PermissionEvaluator
	logger    *slog.Logger
}

func NewRBACAuthorization(evaluator PermissionEvaluator, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		evaluator: evaluator,
		logger:    logger,
	}
}

func (ra *RBACAuthorization) Check(next http.HandlerFunc, permission string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identityID := internal.IdentityIDFromContext(r.Context())
		if identityID == "" {
			ra.logger.Warn("authorization check failed: identity not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		hasAccess, err := ra.evaluator.HasPermission(r.Context(), identityID, permission)
		if err != nil {
			ra.logger.ErrorContext(r.Context(), "authorization check failed", "error", err, "identity_id", identityID, "permission", permission)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		if !hasAccess {
			ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"identity_id", identityID,
				"required_permission", permission)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (ra *RBACAuthorization) Middleware(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, permission)
	}
}

func (ra *RBACAuthorization) RequireLedgerView() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionLedgerView)
}

func (ra *RBACAuthorization) RequireLedgerEdit() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionLedgerEdit)
}

func (ra *RBACAuthorization) RequireIdentityManage() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionIdentityManage)
}

func (ra *RBACAuthorization) RequireTenantManage() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionTenantManage)
}

func (ra *RBACAuthorization) RequireCurrencyManage() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionCurrencyManage)
}

func (ra *RBACAuthorization) RequireAuditView() func(http.Handler) http.Handler {
	return ra.Middleware(PermissionAuditView)
}
