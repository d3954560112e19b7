package identity

import (
	"strings"

	errors "github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/common/validation"
)

type CreateIdentityDTO struct {
	TenantID    string  `json:"tenant_id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName string  `json:"display_name"`
	RoleID      *string `json:"role_id,omitempty"`
}

func (d *CreateIdentityDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("tenant_id", d.TenantID).Required()
	validator.Field("username", d.Username).Required().MinLength(3).MaxLength(50)
	validator.Field("email", d.Email).Required().Email().MaxLength(255)
	validator.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	return validator.Validate()
}

// Normalize trims the identifying fields before validation and storage.
func (d *CreateIdentityDTO) Normalize() {
	d.TenantID = strings.TrimSpace(d.TenantID)
	d.Username = strings.TrimSpace(d.Username)
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	d.DisplayName = strings.TrimSpace(d.DisplayName)
}

// UpdateIdentityDTO applies partial profile updates; nil fields are left
// unchanged.
type UpdateIdentityDTO struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d *UpdateIdentityDTO) Validate() *errors.AppError {
	if d.Email != nil {
		return validation.ValidateEmail(*d.Email)
	}
	return nil
}

type ChangePasswordDTO struct {
	NewPassword string `json:"new_password"`
}

func (d *ChangePasswordDTO) Validate() *errors.AppError {
	return validation.ValidatePassword(d.NewPassword)
}

type AssignRoleDTO struct {
	RoleID string `json:"role_id"`
}

func (d *AssignRoleDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("role_id", d.RoleID).Required()
	return validator.Validate()
}

type ListParams struct {
	Page     int
	PageSize int
}

// Normalize clamps paging input to sane bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type IdentitiesResponse struct {
	Identities []*Identity `json:"identities"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}
