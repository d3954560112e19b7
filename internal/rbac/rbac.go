package rbac

import (
	"time"

	rbacDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/rbac"
)

// Role is the read model for a role, carrying its resolved permission
// codes. Roles and permissions are seed data; nothing here mutates them.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

type Permission struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Role) HasPermissionCode(code string) bool {
	for _, c := range r.Permissions {
		if c == code {
			return true
		}
	}
	return false
}

func RoleFromDataModel(r *rbacDatamodel.Role, permissionCodes []string) *Role {
	if permissionCodes == nil {
		permissionCodes = []string{}
	}
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: permissionCodes,
		CreatedAt:   r.CreatedAt,
	}
}

func PermissionFromDataModel(p *rbacDatamodel.Permission) *Permission {
	return &Permission{
		ID:          p.ID,
		Code:        p.Code,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
