package postgres

import (
	"context"

	tenantDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/tenant"
	"github.com/Skenwise/Loan-Management-System/internal/tenant"
	"gorm.io/gorm"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) tenant.RepositoryAPI {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenantDatamodel.Tenant, error) {
	var model tenantDatamodel.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *TenantRepository) GetByCode(ctx context.Context, code string) (*tenantDatamodel.Tenant, error) {
	var model tenantDatamodel.Tenant
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*tenantDatamodel.Tenant, error) {
	var models []*tenantDatamodel.Tenant
	err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error
	return models, err
}

func (r *TenantRepository) Create(ctx context.Context, model *tenantDatamodel.Tenant) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *TenantRepository) Update(ctx context.Context, model *tenantDatamodel.Tenant) error {
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *TenantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&tenantDatamodel.Tenant{}).Error
}
