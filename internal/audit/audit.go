package audit

import (
	"time"

	auditDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/audit"
)

// AuditEvent is the read model for one recorded security occurrence.
type AuditEvent struct {
	ID         string    `json:"id"`
	IdentityID string    `json:"identity_id,omitempty"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromDataModel(m *auditDatamodel.AuditEvent) *AuditEvent {
	return &AuditEvent{
		ID:         m.ID,
		IdentityID: m.IdentityID,
		Action:     m.Action,
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
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

type AuditEventsResponse struct {
	Events   []*AuditEvent `json:"events"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
