package postgres

import (
	"context"

	identityDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/identity"
	"github.com/Skenwise/Loan-Management-System/internal/identity"
	"gorm.io/gorm"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) identity.RepositoryAPI {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) GetByID(ctx context.Context, id string) (*identityDatamodel.Identity, error) {
	var model identityDatamodel.Identity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *IdentityRepository) GetByUsername(ctx context.Context, username string) (*identityDatamodel.Identity, error) {
	var model identityDatamodel.Identity
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*identityDatamodel.Identity, error) {
	var model identityDatamodel.Identity
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *IdentityRepository) List(ctx context.Context, offset, limit int) ([]*identityDatamodel.Identity, error) {
	var models []*identityDatamodel.Identity
	err := r.db.WithContext(ctx).Order("username ASC").Offset(offset).Limit(limit).Find(&models).Error
	return models, err
}

func (r *IdentityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identityDatamodel.Identity{}).Count(&count).Error
	return count, err
}

func (r *IdentityRepository) Create(ctx context.Context, model *identityDatamodel.Identity) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *IdentityRepository) Update(ctx context.Context, model *identityDatamodel.Identity) error {
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *IdentityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&identityDatamodel.Identity{}).Error
}
