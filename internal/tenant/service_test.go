package tenant

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/Skenwise/Loan-Management-System/internal"
	tenantDatamodel "github.com/Skenwise/Loan-Management-System/internal/core/datamodel/tenant"
)

func TestTenant(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Tenant Module Suite")
}

// Mock repository backed by a map
type mockTenantRepo struct {
	byID          map[string]*tenantDatamodel.Tenant
	returnError   bool
	errorToReturn error
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{byID: map[string]*tenantDatamodel.Tenant{}}
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id string) (*tenantDatamodel.Tenant, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.byID[id], nil
}

func (m *mockTenantRepo) GetByCode(ctx context.Context, code string) (*tenantDatamodel.Tenant, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, model := range m.byID {
		if model.Code == code {
			return model, nil
		}
	}
	return nil, nil
}

func (m *mockTenantRepo) List(ctx context.Context) ([]*tenantDatamodel.Tenant, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	var models []*tenantDatamodel.Tenant
	for _, model := range m.byID {
		models = append(models, model)
	}
	return models, nil
}

func (m *mockTenantRepo) Create(ctx context.Context, model *tenantDatamodel.Tenant) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.byID[model.ID] = model
	return nil
}

func (m *mockTenantRepo) Update(ctx context.Context, model *tenantDatamodel.Tenant) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.byID[model.ID] = model
	return nil
}

func (m *mockTenantRepo) Delete(ctx context.Context, id string) error {
	if m.returnError {
		return m.errorToReturn
	}
	delete(m.byID, id)
	return nil
}

var _ = ginkgo.Describe("Tenant Service", func() {
	var (
		repo    *mockTenantRepo
		service *Service
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockTenantRepo()
		service = NewService(repo, slog.Default())
		ctx = context.Background()

		repo.byID["tenant-1"] = &tenantDatamodel.Tenant{
			ID:           "tenant-1",
			Code:         "acme",
			Name:         "Acme Lending",
			Timezone:     "UTC",
			BaseCurrency: "USD",
			Status:       StatusActive,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should onboard a tenant with the documented defaults", func() {
			// Given a minimal create request
			dto := &CreateTenantDTO{Code: "globex", Name: "Globex Finance"}

			// When creating the tenant
			created, err := service.Create(ctx, dto)

			// Then defaults fill the operational fields
			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(created.Timezone).To(gomega.Equal("UTC"))
			gomega.Expect(created.BaseCurrency).To(gomega.Equal("USD"))
			gomega.Expect(created.SubscriptionTier).To(gomega.Equal("standard"))
			gomega.Expect(created.Status).To(gomega.Equal(StatusActive))
			gomega.Expect(created.ID).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("should keep explicitly provided settings", func() {
			dto := &CreateTenantDTO{
				Code:         "globex",
				Name:         "Globex Finance",
				Timezone:     "Asia/Jakarta",
				BaseCurrency: "idr",
			}

			created, err := service.Create(ctx, dto)

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(created.Timezone).To(gomega.Equal("Asia/Jakarta"))
			gomega.Expect(created.BaseCurrency).To(gomega.Equal("IDR"))
		})

		ginkgo.It("should reject a duplicate code before inserting", func() {
			dto := &CreateTenantDTO{Code: "acme", Name: "Another Acme"}

			created, err := service.Create(ctx, dto)

			gomega.Expect(created).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.Equal(internal.ErrDuplicateTenantCode))
			gomega.Expect(repo.byID).To(gomega.HaveLen(1))
		})

		ginkgo.It("should reject a missing code", func() {
			dto := &CreateTenantDTO{Name: "No Code Inc"}

			created, err := service.Create(ctx, dto)

			gomega.Expect(created).To(gomega.BeNil())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("code is required"))
		})

		ginkgo.It("should reject an overlong name", func() {
			long := make([]byte, 151)
			for i := range long {
				long[i] = 'x'
			}
			dto := &CreateTenantDTO{Code: "globex", Name: string(long)}

			created, err := service.Create(ctx, dto)

			gomega.Expect(created).To(gomega.BeNil())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("name must not exceed 150 characters"))
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should return a stored tenant", func() {
			found, err := service.GetByID(ctx, "tenant-1")

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(found.Code).To(gomega.Equal("acme"))
		})

		ginkgo.It("should return not found for an unknown id", func() {
			found, err := service.GetByID(ctx, "tenant-ghost")

			gomega.Expect(found).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.Equal(internal.ErrTenantNotFound))
		})
	})

	ginkgo.Describe("GetByCode", func() {
		ginkgo.It("should resolve a tenant by code", func() {
			found, err := service.GetByCode(ctx, "acme")

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(found.ID).To(gomega.Equal("tenant-1"))
		})

		ginkgo.It("should return not found for an unknown code", func() {
			found, err := service.GetByCode(ctx, "ghost")

			gomega.Expect(found).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.Equal(internal.ErrTenantNotFound))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should apply a partial update and bump updated_at", func() {
			before := repo.byID["tenant-1"].UpdatedAt
			name := "Acme Lending Group"
			tier := "enterprise"

			updated, err := service.Update(ctx, "tenant-1", &UpdateTenantDTO{
				Name:             &name,
				SubscriptionTier: &tier,
			})

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(updated.Name).To(gomega.Equal("Acme Lending Group"))
			gomega.Expect(updated.SubscriptionTier).To(gomega.Equal("enterprise"))
			gomega.Expect(updated.Code).To(gomega.Equal("acme"))
			gomega.Expect(updated.UpdatedAt.After(before) || updated.UpdatedAt.Equal(before)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject changing the code to one another tenant holds", func() {
			repo.byID["tenant-2"] = &tenantDatamodel.Tenant{
				ID: "tenant-2", Code: "globex", Name: "Globex", Status: StatusActive,
			}
			code := "globex"

			updated, err := service.Update(ctx, "tenant-1", &UpdateTenantDTO{Code: &code})

			gomega.Expect(updated).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.Equal(internal.ErrDuplicateTenantCode))
		})

		ginkgo.It("should allow re-submitting the tenant's own code", func() {
			code := "acme"

			updated, err := service.Update(ctx, "tenant-1", &UpdateTenantDTO{Code: &code})

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(updated.Code).To(gomega.Equal("acme"))
		})

		ginkgo.It("should reject an invalid status", func() {
			status := "dormant"

			updated, err := service.Update(ctx, "tenant-1", &UpdateTenantDTO{Status: &status})

			gomega.Expect(updated).To(gomega.BeNil())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("status must be active or suspended"))
		})

		ginkgo.It("should suspend a tenant through the status field", func() {
			status := StatusSuspended

			updated, err := service.Update(ctx, "tenant-1", &UpdateTenantDTO{Status: &status})

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(updated.IsActive()).To(gomega.BeFalse())
		})

		ginkgo.It("should return not found for an unknown tenant", func() {
			name := "Nobody"

			updated, err := service.Update(ctx, "tenant-ghost", &UpdateTenantDTO{Name: &name})

			gomega.Expect(updated).To(gomega.BeNil())
			gomega.Expect(err).To(gomega.Equal(internal.ErrTenantNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove a stored tenant", func() {
			err := service.Delete(ctx, "tenant-1")

			gomega.Expect(err).To(gomega.BeNil())
			gomega.Expect(repo.byID).To(gomega.BeEmpty())
		})

		ginkgo.It("should return not found for an unknown tenant", func() {
			err := service.Delete(ctx, "tenant-ghost")

			gomega.Expect(err).To(gomega.Equal(internal.ErrTenantNotFound))
		})
	})

	ginkgo.Describe("infrastructure failures", func() {
		ginkgo.It("should surface store errors as internal errors", func() {
			repo.returnError = true
			repo.errorToReturn = errors.New("connection refused")

			found, err := service.GetByID(ctx, "tenant-1")

			gomega.Expect(found).To(gomega.BeNil())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})
	})
})
