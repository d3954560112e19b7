package identity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Skenwise/Loan-Management-System/internal"
	identityDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/identity"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*identityDatamodel.Identity, error)
	GetByUsername(ctx context.Context, username string) (*identityDatamodel.Identity, error)
	GetByEmail(ctx context.Context, email string) (*identityDatamodel.Identity, error)
	List(ctx context.Context, offset, limit int) ([]*identityDatamodel.Identity, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, identity *identityDatamodel.Identity) error
	Update(ctx context.Context, identity *identityDatamodel.Identity) error
	Delete(ctx context.Context, id string) error
}

// RoleStore is the slice of the role catalog this service needs when
// validating assignments.
type RoleStore interface {
	RoleExists(ctx context.Context, roleID string) (bool, error)
}

// PasswordHasher hashes new credentials; auth.PasswordManager satisfies it.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	roleStore RoleStore
	hasher    PasswordHasher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, roleStore RoleStore, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		roleStore: roleStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// Create registers a new identity under the given tenant. Username and
// email must be unused; the password is stored only as a bcrypt hash.
func (s *Service) Create(ctx context.Context, dto *CreateIdentityDTO) (*Identity, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateUsername
	}

	existing, err = s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	if dto.RoleID != nil && *dto.RoleID != "" {
		exists, err := s.roleStore.RoleExists(ctx, *dto.RoleID)
		if err != nil {
			return nil, internal.NewInternalError("role lookup failed", err)
		}
		if !exists {
			return nil, internal.ErrRoleNotFound
		}
	}

	passwordHash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	now := time.Now()
	model := &identityDatamodel.Identity{
		ID:           uuid.New().String(),
		TenantID:     dto.TenantID,
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: passwordHash,
		DisplayName:  dto.DisplayName,
		IsActive:     true,
		RoleID:       dto.RoleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to create identity", "username", dto.Username, "error", err)
		return nil, internal.NewInternalError("failed to create identity", err)
	}

	s.logger.InfoContext(ctx, "identity created", "identity_id", model.ID, "tenant_id", model.TenantID)
	return FromDataModel(model), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Identity, error) {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrIdentityNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*Identity, error) {
	model, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrIdentityNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) List(ctx context.Context, params ListParams) (*IdentitiesResponse, error) {
	params.Normalize()

	models, err := s.repo.List(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, internal.NewInternalError("identity list failed", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, internal.NewInternalError("identity count failed", err)
	}

	identities := make([]*Identity, 0, len(models))
	for _, model := range models {
		identities = append(identities, FromDataModel(model))
	}

	return &IdentitiesResponse{
		Identities: identities,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}

// Update applies a partial profile update. Changing the email re-checks
// uniqueness against everyone but the identity itself.
func (s *Service) Update(ctx context.Context, id string, dto *UpdateIdentityDTO) (*Identity, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrIdentityNotFound
	}

	if dto.Email != nil {
		email := *dto.Email
		other, err := s.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, internal.NewInternalError("identity lookup failed", err)
		}
		if other != nil && other.ID != id {
			return nil, internal.ErrDuplicateEmail
		}
		model.Email = email
	}
	if dto.DisplayName != nil {
		model.DisplayName = *dto.DisplayName
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to update identity", "identity_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update identity", err)
	}

	return FromDataModel(model), nil
}

// ChangePassword replaces the stored hash. This is the administrative
// reset path, so the previous password is not required.
func (s *Service) ChangePassword(ctx context.Context, id string, dto *ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return internal.ErrIdentityNotFound
	}

	passwordHash, err := s.hasher.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewInternalError("password hashing failed", err)
	}

	model.PasswordHash = passwordHash
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to change password", "identity_id", id, "error", err)
		return internal.NewInternalError("failed to change password", err)
	}

	s.logger.InfoContext(ctx, "password changed", "identity_id", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	model, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return internal.ErrIdentityNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete identity", "identity_id", id, "error", err)
		return internal.NewInternalError("failed to delete identity", err)
	}

	s.logger.InfoContext(ctx, "identity deleted", "identity_id", id)
	return nil
}

// AssignRole points the identity at a role. Assigning the role it already
// holds is a no-op success; the next permission check picks up any change.
func (s *Service) AssignRole(ctx context.Context, identityID, roleID string) (*Identity, error) {
	model, err := s.repo.GetByID(ctx, identityID)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrIdentityNotFound
	}

	exists, err := s.roleStore.RoleExists(ctx, roleID)
	if err != nil {
		return nil, internal.NewInternalError("role lookup failed", err)
	}
	if !exists {
		return nil, internal.ErrRoleNotFound
	}

	if model.RoleID != nil && *model.RoleID == roleID {
		return FromDataModel(model), nil
	}

	model.RoleID = &roleID
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to assign role", "identity_id", identityID, "role_id", roleID, "error", err)
		return nil, internal.NewInternalError("failed to assign role", err)
	}

	s.logger.InfoContext(ctx, "role assigned", "identity_id", identityID, "role_id", roleID)
	return FromDataModel(model), nil
}

// RemoveRole clears the identity's role. An identity without a role passes
// no permission checks afterwards.
func (s *Service) RemoveRole(ctx context.Context, identityID string) (*Identity, error) {
	model, err := s.repo.GetByID(ctx, identityID)
	if err != nil {
		return nil, internal.NewInternalError("identity lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrIdentityNotFound
	}

	if model.RoleID == nil {
		return FromDataModel(model), nil
	}

	model.RoleID = nil
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, model); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove role", "identity_id", identityID, "error", err)
		return nil, internal.NewInternalError("failed to remove role", err)
	}

	s.logger.InfoContext(ctx, "role removed", "identity_id", identityID)
	return FromDataModel(model), nil
}
