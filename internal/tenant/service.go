package tenant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Skenwise/Loan-Management-System/internal"
	tenantDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/tenant"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*tenantDatamodel.Tenant, error)
	GetByCode(ctx context.Context, code string) (*tenantDatamodel.Tenant, error)
	List(ctx context.Context) ([]*tenantDatamodel.Tenant, error)
	Create(ctx context.Context, tenant *tenantDatamodel.Tenant) error
	Update(ctx context.Context, tenant *tenantDatamodel.Tenant) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create onboards a tenant. The code is the stable external identifier,
// so a duplicate is rejected before the insert is attempted.
func (s *Service) Create(ctx context.Context, dto *CreateTenantDTO) (*Tenant, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(ctx, dto.Code)
	if err != nil {
		return nil, internal.NewInternalError("tenant lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateTenantCode
	}

	now := time.Now()
	model := &tenantDatamodel.Tenant{
		ID:               uuid.New().String(),
		Code:             dto.Code,
		Name:             dto.Name,
		Timezone:         dto.Timezone,
		BaseCurrency:     dto.BaseCurrency,
		SubscriptionTier: dto.SubscriptionTier,
		Status:           StatusActive,
		Note:             dto.Note,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to create tenant", "code", dto.Code, "error", err)
		return nil, internal.NewInternalError("failed to create tenant", err)
	}

	s.logger.InfoContext(ctx, "tenant created", "tenant_id", model.ID, "code", model.Code)
	return FromDataModel(model), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Tenant, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("tenant lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrTenantNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Tenant, error) {
	model, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, internal.NewInternalError("tenant lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrTenantNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context) (*TenantsResponse, error) {
	models, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewInternalError("tenant list failed", err)
	}

	tenants := make([]*Tenant, 0, len(models))
	for _, model := range models {
		tenants = append(tenants, FromDataModel(model))
	}
	return &TenantsResponse{Tenants: tenants}, nil
}

// Update applies a partial update. Changing the code re-checks uniqueness
// against every tenant but this one.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateTenantDTO) (*Tenant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("tenant lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrTenantNotFound
	}

	if dto.Code != nil {
		code := *dto.Code
		other, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, internal.NewInternalError("tenant lookup failed", err)
		}
		if other != nil && other.ID != id {
			return nil, internal.ErrDuplicateTenantCode
		}
		model.Code = code
	}
	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.Timezone != nil {
		model.Timezone = *dto.Timezone
	}
	if dto.BaseCurrency != nil {
		model.BaseCurrency = *dto.BaseCurrency
	}
	if dto.SubscriptionTier != nil {
		model.SubscriptionTier = *dto.SubscriptionTier
	}
	if dto.Status != nil {
		model.Status = *dto.Status
	}
	if dto.Note != nil {
		model.Note = *dto.Note
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to update tenant", "tenant_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update tenant", err)
	}

	return FromDataModel(model), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("tenant lookup failed", err)
	}
	if model == nil {
		return internal.ErrTenantNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete tenant", "tenant_id", id, "error", err)
		return internal.NewInternalError("failed to delete tenant", err)
	}

	s.logger.InfoContext(ctx, "tenant deleted", "tenant_id", id)
	return nil
}
