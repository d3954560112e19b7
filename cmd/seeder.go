package cmd

import (
	"errors"
	"fmt"
	"log"

	currencyDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/currency"
	identityDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/identity"
	rbacDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/rbac"
	tenantDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/tenant"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with baseline data",
	Long:  `Seed permissions, roles, a default tenant, currencies and two starter identities for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			// children first so foreign keys do not get in the way
			for _, table := range []string{
				"audit_events", "identities", "role_permissions",
				"permissions", "roles", "exchange_rates", "currencies", "tenants",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing seed tables")
		}

		permissions := []struct {
			Code string
			Desc string
		}{
			{"ledger.view", "Read loan and ledger records"},
			{"ledger.edit", "Create and modify loan and ledger records"},
			{"identity.manage", "Manage identities and role assignments"},
			{"tenant.manage", "Manage tenant settings"},
			{"currency.manage", "Manage currencies and exchange rates"},
			{"audit.view", "Read the audit trail"},
		}

		permissionIDs := make(map[string]string, len(permissions))
		for _, p := range permissions {
			var existing rbacDatamodel.Permission
			err := db.Where("code = ?", p.Code).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				existing = rbacDatamodel.Permission{
					ID:          uuid.NewString(),
					Code:        p.Code,
					Description: p.Desc,
				}
				if err := db.Create(&existing).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Code, err)
				}
				fmt.Println("Seeded permission:", p.Code)
			} else if err != nil {
				log.Fatalf("failed to look up permission %s: %v", p.Code, err)
			}
			permissionIDs[p.Code] = existing.ID
		}

		roles := []struct {
			Name  string
			Desc  string
			Perms []string
		}{
			{"admin", "Full administrative access", []string{
				"ledger.view", "ledger.edit", "identity.manage",
				"tenant.manage", "currency.manage", "audit.view",
			}},
			{"auditor", "Read-only access to ledgers and the audit trail", []string{
				"ledger.view", "audit.view",
			}},
			{"loan_officer", "Day-to-day loan servicing", []string{
				"ledger.view", "ledger.edit",
			}},
		}

		roleIDs := make(map[string]string, len(roles))
		for _, r := range roles {
			var existing rbacDatamodel.Role
			err := db.Where("name = ?", r.Name).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				existing = rbacDatamodel.Role{
					ID:          uuid.NewString(),
					Name:        r.Name,
					Description: r.Desc,
				}
				if err := db.Create(&existing).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Name, err)
				}
				fmt.Println("Seeded role:", r.Name)
			} else if err != nil {
				log.Fatalf("failed to look up role %s: %v", r.Name, err)
			}
			roleIDs[r.Name] = existing.ID
		}

		for _, r := range roles {
			for _, code := range r.Perms {
				var existing rbacDatamodel.RolePermission
				err := db.Where("role_id = ? AND permission_id = ?", roleIDs[r.Name], permissionIDs[code]).
					First(&existing).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					grant := rbacDatamodel.RolePermission{
						ID:           uuid.NewString(),
						RoleID:       roleIDs[r.Name],
						PermissionID: permissionIDs[code],
					}
					if err := db.Create(&grant).Error; err != nil {
						log.Fatalf("failed to grant %s to role %s: %v", code, r.Name, err)
					}
				} else if err != nil {
					log.Fatalf("failed to look up grant %s for role %s: %v", code, r.Name, err)
				}
			}
			fmt.Printf("Granted permissions to role %s: %v\n", r.Name, r.Perms)
		}

		var defaultTenant tenantDatamodel.Tenant
		err = db.Where("code = ?", "default").First(&defaultTenant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			defaultTenant = tenantDatamodel.Tenant{
				ID:               uuid.NewString(),
				Code:             "default",
				Name:             "Default Tenant",
				Timezone:         "UTC",
				BaseCurrency:     "USD",
				SubscriptionTier: "standard",
				Status:           "active",
			}
			if err := db.Create(&defaultTenant).Error; err != nil {
				log.Fatalf("failed to insert default tenant: %v", err)
			}
			fmt.Println("Seeded default tenant")
		} else if err != nil {
			log.Fatalf("failed to look up default tenant: %v", err)
		}

		currencies := []struct {
			Code     string
			Name     string
			Symbol   string
			Decimals int
		}{
			{"USD", "US Dollar", "$", 2},
			{"EUR", "Euro", "€", 2},
			{"IDR", "Indonesian Rupiah", "Rp", 0},
		}

		for _, c := range currencies {
			var existing currencyDatamodel.Currency
			err := db.Where("code = ?", c.Code).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row := currencyDatamodel.Currency{
					ID:       uuid.NewString(),
					TenantID: defaultTenant.ID,
					Code:     c.Code,
					Name:     c.Name,
					Symbol:   c.Symbol,
					Decimals: c.Decimals,
				}
				if err := db.Create(&row).Error; err != nil {
					log.Fatalf("failed to insert currency %s: %v", c.Code, err)
				}
				fmt.Println("Seeded currency:", c.Code)
			} else if err != nil {
				log.Fatalf("failed to look up currency %s: %v", c.Code, err)
			}
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		identities := []struct {
			Username    string
			Email       string
			DisplayName string
			Role        string
		}{
			{"admin", "admin@mail.com", "Administrator", "admin"},
			{"auditor", "auditor@mail.com", "Auditor", "auditor"},
		}

		for _, id := range identities {
			var existing identityDatamodel.Identity
			err := db.Where("username = ?", id.Username).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				roleID := roleIDs[id.Role]
				row := identityDatamodel.Identity{
					ID:           uuid.NewString(),
					TenantID:     defaultTenant.ID,
					Username:     id.Username,
					Email:        id.Email,
					PasswordHash: string(hash),
					DisplayName:  id.DisplayName,
					IsActive:     true,
					RoleID:       &roleID,
				}
				if err := db.Create(&row).Error; err != nil {
					log.Fatalf("failed to insert identity %s: %v", id.Username, err)
				}
				fmt.Printf("Seeded identity %s with role %s\n", id.Username, id.Role)
			} else if err != nil {
				log.Fatalf("failed to look up identity %s: %v", id.Username, err)
			}
		}

		fmt.Println("Seeding complete")
	},
}
