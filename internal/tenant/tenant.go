package tenant

import (
	"time"

	tenantDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/tenant"
)

// Tenant is a company onboarded onto the platform. Row-level scoping of
// ledger data is handled elsewhere; this type is the administrative record.
type Tenant struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Timezone         string    `json:"timezone"`
	BaseCurrency     string    `json:"base_currency"`
	SubscriptionTier string    `json:"subscription_tier"`
	Status           string    `json:"status"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"

	DefaultTimezone     = "UTC"
	DefaultBaseCurrency = "USD"
	DefaultTier         = "standard"
)

func (t *Tenant) ToDataModel() *tenantDatamodel.Tenant {
	return &tenantDatamodel.Tenant{
		ID:               t.ID,
		Code:             t.Code,
		Name:             t.Name,
		Timezone:         t.Timezone,
		BaseCurrency:     t.BaseCurrency,
		SubscriptionTier: t.SubscriptionTier,
		Status:           t.Status,
		Note:             t.Note,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func FromDataModel(m *tenantDatamodel.Tenant) *Tenant {
	return &Tenant{
		ID:               m.ID,
		Code:             m.Code,
		Name:             m.Name,
		Timezone:         m.Timezone,
		BaseCurrency:     m.BaseCurrency,
		SubscriptionTier: m.SubscriptionTier,
		Status:           m.Status,
		Note:             m.Note,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
