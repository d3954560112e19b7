package postgres

import (
	"context"

	rbacDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/rbac"
	"gorm.io/gorm"
)

type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) *RBACRepository {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) GetRoleByID(ctx context.Context, id string) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) GetRoleByName(ctx context.Context, name string) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) ListRoles(ctx context.Context) ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

// RoleExists satisfies the role check other services need without handing
// them the whole catalog API.
func (r *RBACRepository) RoleExists(ctx context.Context, roleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&rbacDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RBACRepository) GetPermissionByCode(ctx context.Context, code string) (*rbacDatamodel.Permission, error) {
	var permission rbacDatamodel.Permission
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&permission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &permission, nil
}

func (r *RBACRepository) ListPermissions(ctx context.Context) ([]*rbacDatamodel.Permission, error) {
	var permissions []*rbacDatamodel.Permission
	err := r.db.WithContext(ctx).Order("code ASC").Find(&permissions).Error
	return permissions, err
}

func (r *RBACRepository) PermissionCodesForRole(ctx context.Context, roleID string) ([]string, error) {
	query := `SELECT p.code
	         FROM permissions p
	         JOIN role_permissions rp ON p.id = rp.permission_id
	         WHERE rp.role_id = ?
	         ORDER BY p.code ASC`

	rows, err := r.db.WithContext(ctx).Raw(query, roleID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *RBACRepository) RolesForPermission(ctx context.Context, permissionID string) ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions rp ON rp.role_id = roles.id").
		Where("rp.permission_id = ?", permissionID).
		Order("roles.name ASC").
		Find(&roles).Error
	return roles, err
}
