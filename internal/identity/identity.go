package identity

import (
	"time"

	identityDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/identity"
)

type Identity struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenant_id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"display_name"`
	IsActive     bool       `json:"is_active"`
	RoleID       *string    `json:"role_id,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (i *Identity) HasRole() bool {
	return i.RoleID != nil && *i.RoleID != ""
}

func (i *Identity) Activate() {
	i.IsActive = true
	i.UpdatedAt = time.Now()
}

func (i *Identity) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
}

func ToDataModel(i *Identity) *identityDatamodel.Identity {
	return &identityDatamodel.Identity{
		ID:           i.ID,
		TenantID:     i.TenantID,
		Username:     i.Username,
		Email:        i.Email,
		PasswordHash: i.PasswordHash,
		DisplayName:  i.DisplayName,
		IsActive:     i.IsActive,
		RoleID:       i.RoleID,
		LastLoginAt:  i.LastLoginAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func FromDataModel(i *identityDatamodel.Identity) *Identity {
	return &Identity{
		ID:           i.ID,
		TenantID:     i.TenantID,
		Username:     i.Username,
		Email:        i.Email,
		PasswordHash: i.PasswordHash,
		DisplayName:  i.DisplayName,
		IsActive:     i.IsActive,
		RoleID:       i.RoleID,
		LastLoginAt:  i.LastLoginAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
