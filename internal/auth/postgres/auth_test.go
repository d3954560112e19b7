package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/Skenwise/Loan-Management-System/internal/auth"
	authPostgres "github.com/Skenwise/Loan-Management-System/internal/auth/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteIdentity struct {
	ID           string `gorm:"primaryKey"`
	TenantID     string `gorm:"column:tenant_id"`
	Username     string `gorm:"column:username;uniqueIndex;not null"`
	Email        string `gorm:"column:email"`
	PasswordHash string `gorm:"column:password_hash"`
	IsActive     bool   `gorm:"column:is_active"`
	RoleID       *string
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SQLiteIdentity) TableName() string {
	return "identities"
}

type SQLiteRole struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (SQLiteRole) TableName() string {
	return "roles"
}

type SQLitePermission struct {
	ID   string `gorm:"primaryKey"`
	Code string `gorm:"column:code;uniqueIndex;not null"`
}

func (SQLitePermission) TableName() string {
	return "permissions"
}

type SQLiteRolePermission struct {
	ID           string `gorm:"primaryKey"`
	RoleID       string `gorm:"column:role_id;uniqueIndex:idx_role_permission"`
	PermissionID string `gorm:"column:permission_id;uniqueIndex:idx_role_permission"`
}

func (SQLiteRolePermission) TableName() string {
	return "role_permissions"
}

var _ = Describe("Auth PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *authPostgres.Repository
		ctx  context.Context
	)

	adminRole := "role-admin-0001"
	viewPerm := "perm-view-0001"
	editPerm := "perm-edit-0001"

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteIdentity{}, &SQLiteRole{}, &SQLitePermission{}, &SQLiteRolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
		ctx = context.Background()

		Expect(db.Create(&SQLiteRole{ID: adminRole, Name: "admin"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&SQLitePermission{ID: viewPerm, Code: "ledger.view"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&SQLitePermission{ID: editPerm, Code: "ledger.edit"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&SQLiteRolePermission{ID: "grant-0001", RoleID: adminRole, PermissionID: viewPerm}).Error).NotTo(HaveOccurred())

		active := &SQLiteIdentity{
			ID:           "id-alice-00001",
			TenantID:     "tenant-0001",
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			IsActive:     true,
			RoleID:       &adminRole,
		}
		Expect(db.Create(active).Error).NotTo(HaveOccurred())

		inactive := &SQLiteIdentity{
			ID:           "id-mallory-0001",
			TenantID:     "tenant-0001",
			Username:     "mallory",
			Email:        "mallory@example.com",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			IsActive:     false,
		}
		Expect(db.Create(inactive).Error).NotTo(HaveOccurred())

		noRole := &SQLiteIdentity{
			ID:           "id-carol-00001",
			TenantID:     "tenant-0001",
			Username:     "carol",
			Email:        "carol@example.com",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			IsActive:     true,
		}
		Expect(db.Create(noRole).Error).NotTo(HaveOccurred())
	})

	Describe("GetCredentialByUsername", func() {
		It("should return the credential for an active identity", func() {
			record, err := repo.GetCredentialByUsername(ctx, "alice")
			Expect(err).NotTo(HaveOccurred())
			Expect(record).NotTo(BeNil())
			Expect(record.ID).To(Equal("id-alice-00001"))
			Expect(record.Username).To(Equal("alice"))
			Expect(record.PasswordHash).To(Equal("$2a$10$abcdefghijklmnopqrstuv"))
		})

		It("should return nil without error for an unknown username", func() {
			record, err := repo.GetCredentialByUsername(ctx, "nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(record).To(BeNil())
		})

		It("should treat a deactivated identity the same as a missing one", func() {
			record, err := repo.GetCredentialByUsername(ctx, "mallory")
			Expect(err).NotTo(HaveOccurred())
			Expect(record).To(BeNil())
		})
	})

	Describe("TouchLastLogin", func() {
		It("should stamp the last login time", func() {
			err := repo.TouchLastLogin(ctx, "id-alice-00001")
			Expect(err).NotTo(HaveOccurred())

			var identity SQLiteIdentity
			Expect(db.First(&identity, "id = ?", "id-alice-00001").Error).NotTo(HaveOccurred())
			Expect(identity.LastLoginAt).NotTo(BeNil())
		})

		It("should handle an unknown identity gracefully", func() {
			err := repo.TouchLastLogin(ctx, "id-ghost")
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("RoleIDForIdentity", func() {
		It("should return the assigned role", func() {
			roleID, err := repo.RoleIDForIdentity(ctx, "id-alice-00001")
			Expect(err).NotTo(HaveOccurred())
			Expect(roleID).To(Equal(adminRole))
		})

		It("should return empty for an identity without a role", func() {
			roleID, err := repo.RoleIDForIdentity(ctx, "id-carol-00001")
			Expect(err).NotTo(HaveOccurred())
			Expect(roleID).To(BeEmpty())
		})

		It("should return empty for an unknown identity", func() {
			roleID, err := repo.RoleIDForIdentity(ctx, "id-ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(roleID).To(BeEmpty())
		})

		It("should return empty for a deactivated identity", func() {
			roleID, err := repo.RoleIDForIdentity(ctx, "id-mallory-0001")
			Expect(err).NotTo(HaveOccurred())
			Expect(roleID).To(BeEmpty())
		})
	})

	Describe("PermissionIDForCode", func() {
		It("should resolve a known code", func() {
			permissionID, err := repo.PermissionIDForCode(ctx, "ledger.view")
			Expect(err).NotTo(HaveOccurred())
			Expect(permissionID).To(Equal(viewPerm))
		})

		It("should return empty for an unknown code", func() {
			permissionID, err := repo.PermissionIDForCode(ctx, "no.such.permission")
			Expect(err).NotTo(HaveOccurred())
			Expect(permissionID).To(BeEmpty())
		})
	})

	Describe("RoleHasPermission", func() {
		It("should return true for an existing grant", func() {
			granted, err := repo.RoleHasPermission(ctx, adminRole, viewPerm)
			Expect(err).NotTo(HaveOccurred())
			Expect(granted).To(BeTrue())
		})

		It("should return false for a missing grant", func() {
			granted, err := repo.RoleHasPermission(ctx, adminRole, editPerm)
			Expect(err).NotTo(HaveOccurred())
			Expect(granted).To(BeFalse())
		})
	})

	Describe("Database constraints", func() {
		It("should reject a duplicate role permission grant", func() {
			duplicate := &SQLiteRolePermission{ID: "grant-0002", RoleID: adminRole, PermissionID: viewPerm}
			Expect(db.Create(duplicate).Error).To(HaveOccurred())
		})
	})

	Describe("Interface compliance", func() {
		It("should satisfy the store interfaces the auth services consume", func() {
			var _ auth.CredentialStore = repo
			var _ auth.AuthorizationStore = repo
		})
	})
})
