package tenant

import "time"

type Tenant struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	Code             string    `gorm:"column:code;uniqueIndex;not null"`
	Name             string    `gorm:"column:name;not null"`
	Timezone         string    `gorm:"column:timezone;default:UTC"`
	BaseCurrency     string    `gorm:"column:base_currency;default:USD"`
	SubscriptionTier string    `gorm:"column:subscription_tier;default:standard"`
	Status           string    `gorm:"column:status;default:active"`
	Note             string    `gorm:"column:note"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
