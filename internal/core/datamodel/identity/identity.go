package identity

import "time"

type Identity struct {
	ID           string     `gorm:"primaryKey;type:uuid"`
	TenantID     string     `gorm:"column:tenant_id;type:uuid;not null"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	DisplayName  string     `gorm:"column:display_name"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	RoleID       *string    `gorm:"column:role_id;type:uuid"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Identity) TableName() string {
	return "identities"
}
