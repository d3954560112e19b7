package auth

import (
	"context"
	"database/sql"

	"github.com/Skenwise/Loan-Management-System/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetCredentialByUsername returns the stored credential for an active
// identity. A missing or deactivated identity returns (nil, nil): the
// caller cannot tell the cases apart, and neither can a login response.
func (r *Repository) GetCredentialByUsername(ctx context.Context, username string) (*auth.CredentialRecord, error) {
	var record auth.CredentialRecord
	query := `SELECT id, username, password_hash FROM identities WHERE username = ? AND is_active = true`

	row := r.db.WithContext(ctx).Raw(query, username).Row()
	if err := row.Scan(&record.ID, &record.Username, &record.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) TouchLastLogin(ctx context.Context, identityID string) error {
	query := `UPDATE identities SET last_login_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	return r.db.WithContext(ctx).Exec(query, identityID).Error
}

// RoleIDForIdentity returns the role assigned to an active identity, or ""
// when the identity is unknown, deactivated, or has no role. Only a store
// failure produces an error.
func (r *Repository) RoleIDForIdentity(ctx context.Context, identityID string) (string, error) {
	var roleID sql.NullString
	query := `SELECT role_id FROM identities WHERE id = ? AND is_active = true`

	row := r.db.WithContext(ctx).Raw(query, identityID).Row()
	if err := row.Scan(&roleID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	if !roleID.Valid {
		return "", nil
	}
	return roleID.String, nil
}

func (r *Repository) PermissionIDForCode(ctx context.Context, code string) (string, error) {
	var permissionID string
	query := `SELECT id FROM permissions WHERE code = ?`

	row := r.db.WithContext(ctx).Raw(query, code).Row()
	if err := row.Scan(&permissionID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return permissionID, nil
}

func (r *Repository) RoleHasPermission(ctx context.Context, roleID, permissionID string) (bool, error) {
	var count int64
	query := `SELECT COUNT(1) FROM role_permissions WHERE role_id = ? AND permission_id = ?`

	row := r.db.WithContext(ctx).Raw(query, roleID, permissionID).Row()
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
