package postgres

import (
	"context"

	"github.com/Skenwise/Loan-Management-System/internal/audit"
	auditDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, model *auditDatamodel.AuditEvent) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *AuditRepository) List(ctx context.Context, offset, limit int) ([]*auditDatamodel.AuditEvent, error) {
	var models []*auditDatamodel.AuditEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	return models, err
}

func (r *AuditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&auditDatamodel.AuditEvent{}).Count(&count).Error
	return count, err
}
