package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/Skenwise/Loan-Management-System/internal/identity"
	"github.com/Skenwise/Loan-Management-System/internal/rbac"
	rbacPostgres "github.com/Skenwise/Loan-Management-System/internal/rbac/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRBACPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteRole struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLiteRole) TableName() string {
	return "roles"
}

type SQLitePermission struct {
	ID          string    `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SQLitePermission) TableName() string {
	return "permissions"
}

type SQLiteRolePermission struct {
	ID           string    `gorm:"primaryKey"`
	RoleID       string    `gorm:"column:role_id;not null;uniqueIndex:idx_role_permission"`
	PermissionID string    `gorm:"column:permission_id;not null;uniqueIndex:idx_role_permission"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (SQLiteRolePermission) TableName() string {
	return "role_permissions"
}

var _ = Describe("RBAC PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *rbacPostgres.RBACRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRole{}, &SQLitePermission{}, &SQLiteRolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = rbacPostgres.NewRBACRepository(db)
		ctx = context.Background()

		seed := []interface{}{
			&SQLiteRole{ID: "role-admin", Name: "admin", Description: "Full access"},
			&SQLiteRole{ID: "role-auditor", Name: "auditor", Description: "Read only"},
			&SQLitePermission{ID: "perm-view", Code: "ledger.view"},
			&SQLitePermission{ID: "perm-edit", Code: "ledger.edit"},
			&SQLitePermission{ID: "perm-audit", Code: "audit.view"},
			&SQLiteRolePermission{ID: "rp-1", RoleID: "role-admin", PermissionID: "perm-view"},
			&SQLiteRolePermission{ID: "rp-2", RoleID: "role-admin", PermissionID: "perm-edit"},
			&SQLiteRolePermission{ID: "rp-3", RoleID: "role-auditor", PermissionID: "perm-view"},
			&SQLiteRolePermission{ID: "rp-4", RoleID: "role-auditor", PermissionID: "perm-audit"},
		}
		for _, row := range seed {
			Expect(db.Create(row).Error).NotTo(HaveOccurred())
		}
	})

	Describe("GetRoleByID", func() {
		It("should find a seeded role", func() {
			role, err := repo.GetRoleByID(ctx, "role-admin")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).NotTo(BeNil())
			Expect(role.Name).To(Equal("admin"))
		})

		It("should return nil without error when the role does not exist", func() {
			role, err := repo.GetRoleByID(ctx, "role-ghost")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(BeNil())
		})
	})

	Describe("GetRoleByName", func() {
		It("should find a role by name", func() {
			role, err := repo.GetRoleByName(ctx, "auditor")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).NotTo(BeNil())
			Expect(role.ID).To(Equal("role-auditor"))
		})

		It("should return nil without error for an unknown name", func() {
			role, err := repo.GetRoleByName(ctx, "superuser")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(BeNil())
		})
	})

	Describe("ListRoles", func() {
		It("should list roles ordered by name", func() {
			roles, err := repo.ListRoles(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Name).To(Equal("admin"))
			Expect(roles[1].Name).To(Equal("auditor"))
		})
	})

	Describe("RoleExists", func() {
		It("should report true for a seeded role", func() {
			exists, err := repo.RoleExists(ctx, "role-admin")

			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should report false for an unknown role", func() {
			exists, err := repo.RoleExists(ctx, "role-ghost")

			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("GetPermissionByCode", func() {
		It("should find a permission by code", func() {
			permission, err := repo.GetPermissionByCode(ctx, "ledger.edit")

			Expect(err).NotTo(HaveOccurred())
			Expect(permission).NotTo(BeNil())
			Expect(permission.ID).To(Equal("perm-edit"))
		})

		It("should return nil without error for an unknown code", func() {
			permission, err := repo.GetPermissionByCode(ctx, "ledger.burn")

			Expect(err).NotTo(HaveOccurred())
			Expect(permission).To(BeNil())
		})
	})

	Describe("ListPermissions", func() {
		It("should list permissions ordered by code", func() {
			permissions, err := repo.ListPermissions(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(3))
			Expect(permissions[0].Code).To(Equal("audit.view"))
			Expect(permissions[2].Code).To(Equal("ledger.view"))
		})
	})

	Describe("PermissionCodesForRole", func() {
		It("should resolve the codes granted to a role", func() {
			codes, err := repo.PermissionCodesForRole(ctx, "role-admin")

			Expect(err).NotTo(HaveOccurred())
			Expect(codes).To(Equal([]string{"ledger.edit", "ledger.view"}))
		})

		It("should return no codes for a role without grants", func() {
			Expect(db.Create(&SQLiteRole{ID: "role-empty", Name: "empty"}).Error).NotTo(HaveOccurred())

			codes, err := repo.PermissionCodesForRole(ctx, "role-empty")

			Expect(err).NotTo(HaveOccurred())
			Expect(codes).To(BeEmpty())
		})
	})

	Describe("RolesForPermission", func() {
		It("should list the roles granted a shared permission", func() {
			roles, err := repo.RolesForPermission(ctx, "perm-view")

			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Name).To(Equal("admin"))
			Expect(roles[1].Name).To(Equal("auditor"))
		})

		It("should list a single role for an exclusive permission", func() {
			roles, err := repo.RolesForPermission(ctx, "perm-edit")

			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].Name).To(Equal("admin"))
		})
	})

	Describe("duplicate grants", func() {
		It("should reject a second grant of the same permission to a role", func() {
			err := db.Create(&SQLiteRolePermission{
				ID: "rp-dup", RoleID: "role-admin", PermissionID: "perm-view",
			}).Error

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("interface compliance", func() {
		It("should satisfy the service contracts", func() {
			var _ rbac.RepositoryAPI = repo
			var _ identity.RoleStore = repo
		})
	})
})
