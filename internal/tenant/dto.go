package tenant

import (
	"strings"

	errors "github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/common/validation"
)

type CreateTenantDTO struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Timezone         string `json:"timezone"`
	BaseCurrency     string `json:"base_currency"`
	SubscriptionTier string `json:"subscription_tier"`
	Note             string `json:"note"`
}

func (d *CreateTenantDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("code", d.Code).Required().MaxLength(50)
	validator.Field("name", d.Name).Required().MaxLength(150)
	return validator.Validate()
}

// Normalize trims input and fills the documented defaults so the stored
// row never carries empty operational fields.
func (d *CreateTenantDTO) Normalize() {
	d.Code = strings.TrimSpace(d.Code)
	d.Name = strings.TrimSpace(d.Name)
	d.Timezone = strings.TrimSpace(d.Timezone)
	d.BaseCurrency = strings.ToUpper(strings.TrimSpace(d.BaseCurrency))
	d.SubscriptionTier = strings.TrimSpace(d.SubscriptionTier)

	if d.Timezone == "" {
		d.Timezone = DefaultTimezone
	}
	if d.BaseCurrency == "" {
		d.BaseCurrency = DefaultBaseCurrency
	}
	if d.SubscriptionTier == "" {
		d.SubscriptionTier = DefaultTier
	}
}

// UpdateTenantDTO applies partial updates; nil fields are left unchanged.
type UpdateTenantDTO struct {
	Code             *string `json:"code,omitempty"`
	Name             *string `json:"name,omitempty"`
	Timezone         *string `json:"timezone,omitempty"`
	BaseCurrency     *string `json:"base_currency,omitempty"`
	SubscriptionTier *string `json:"subscription_tier,omitempty"`
	Status           *string `json:"status,omitempty"`
	Note             *string `json:"note,omitempty"`
}

func (d *UpdateTenantDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	if d.Code != nil {
		validator.Field("code", *d.Code).Required().MaxLength(50)
	}
	if d.Name != nil {
		validator.Field("name", *d.Name).Required().MaxLength(150)
	}
	if d.Status != nil {
		validator.Field("status", *d.Status).Custom(func(value interface{}) *errors.AppError {
			if v, ok := value.(string); ok {
				if v != StatusActive && v != StatusSuspended {
					return errors.NewValidationFieldError("status", "status must be active or suspended", errors.ErrCodeValidationFailed)
				}
			}
			return nil
		})
	}
	return validator.Validate()
}

type TenantsResponse struct {
	Tenants []*Tenant `json:"tenants"`
}
