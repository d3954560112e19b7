package rbac

import (
	"context"
	"log/slog"

	"github.com/Skenwise/Loan-Management-System/internal"
	rbacDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/rbac"
)

type RepositoryAPI interface {
	GetRoleByID(ctx context.Context, id string) (*rbacDatamodel.Role, error)
	GetRoleByName(ctx context.Context, name string) (*rbacDatamodel.Role, error)
	ListRoles(ctx context.Context) ([]*rbacDatamodel.Role, error)
	GetPermissionByCode(ctx context.Context, code string) (*rbacDatamodel.Permission, error)
	ListPermissions(ctx context.Context) ([]*rbacDatamodel.Permission, error)
	PermissionCodesForRole(ctx context.Context, roleID string) ([]string, error)
	RolesForPermission(ctx context.Context, permissionID string) ([]*rbacDatamodel.Role, error)
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

func (s *Service) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	model, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("role lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrRoleNotFound
	}
	return s.resolveRole(ctx, model)
}

func (s *Service) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	model, err := s.repo.GetRoleByName(ctx, name)
	if err != nil {
		return nil, internal.NewInternalError("role lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrRoleNotFound
	}
	return s.resolveRole(ctx, model)
}

// ListRoles returns every role with its permission codes resolved. The
// catalog is seed data and small, so the per-role resolution stays simple.
func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	models, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, internal.NewInternalError("role list failed", err)
	}

	roles := make([]*Role, 0, len(models))
	for _, model := range models {
		role, err := s.resolveRole(ctx, model)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *Service) GetPermissionByCode(ctx context.Context, code string) (*Permission, error) {
	model, err := s.repo.GetPermissionByCode(ctx, code)
	if err != nil {
		return nil, internal.NewInternalError("permission lookup failed", err)
	}
	if model == nil {
		return nil, internal.ErrPermissionNotFound
	}
	return PermissionFromDataModel(model), nil
}

func (s *Service) ListPermissions(ctx context.Context) ([]*Permission, error) {
	models, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, internal.NewInternalError("permission list failed", err)
	}

	permissions := make([]*Permission, 0, len(models))
	for _, model := range models {
		permissions = append(permissions, PermissionFromDataModel(model))
	}
	return permissions, nil
}

// RolesForPermission lists the roles granted a permission code. An unknown
// code is a NotFound here: this is the admin read surface, not the
// fail-closed evaluator.
func (s *Service) RolesForPermission(ctx context.Context, code string) ([]*Role, error) {
	permission, err := s.repo.GetPermissionByCode(ctx, code)
	if err != nil {
		return nil, internal.NewInternalError("permission lookup failed", err)
	}
	if permission == nil {
		return nil, internal.ErrPermissionNotFound
	}

	models, err := s.repo.RolesForPermission(ctx, permission.ID)
	if err != nil {
		return nil, internal.NewInternalError("role list failed", err)
	}

	roles := make([]*Role, 0, len(models))
	for _, model := range models {
		role, err := s.resolveRole(ctx, model)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *Service) resolveRole(ctx context.Context, model *rbacDatamodel.Role) (*Role, error) {
	codes, err := s.repo.PermissionCodesForRole(ctx, model.ID)
	if err != nil {
		return nil, internal.NewInternalError("permission resolution failed", err)
	}
	return RoleFromDataModel(model, codes), nil
}
