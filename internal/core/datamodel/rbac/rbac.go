package rbac

import "time"

type Role struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

type Permission struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// RolePermission links one role to one permission. The composite unique
// index keeps duplicate grants out of the table.
type RolePermission struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	RoleID       string    `gorm:"column:role_id;type:uuid;not null;uniqueIndex:idx_role_permission"`
	PermissionID string    `gorm:"column:permission_id;type:uuid;not null;uniqueIndex:idx_role_permission"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
