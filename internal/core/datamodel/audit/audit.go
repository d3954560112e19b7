package audit

import "time"

// AuditEvent is one security-relevant occurrence: a login attempt or an
// authorization denial. IdentityID may be empty when authentication failed
// before an identity could be resolved.
type AuditEvent struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	IdentityID string    `gorm:"column:identity_id;index"`
	Action     string    `gorm:"column:action;not null;index"`
	Detail     string    `gorm:"column:detail"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index"`
}
