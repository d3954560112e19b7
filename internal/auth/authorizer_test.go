package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/core/events"
)

// Mock AuthorizationStore backed by maps, mirroring the three lookups
type mockAuthorizationStore struct {
	roleByIdentity map[string]string          // identityID -> roleID
	permIDByCode   map[string]string          // permission code -> permissionID
	grants         map[string]map[string]bool // roleID -> permissionID -> granted
	returnError    bool
	errorToReturn  error
}

func newMockAuthorizationStore() *mockAuthorizationStore {
	return &mockAuthorizationStore{
		roleByIdentity: map[string]string{
			"id-admin":   "role-admin",
			"id-auditor": "role-auditor",
			"id-no-role": "",
		},
		permIDByCode: map[string]string{
			"ledger.view":     "perm-ledger-view",
			"ledger.edit":     "perm-ledger-edit",
			"identity.manage": "perm-identity-manage",
		},
		grants: map[string]map[string]bool{
			"role-admin": {
				"perm-ledger-view":     true,
				"perm-ledger-edit":     true,
				"perm-identity-manage": true,
			},
			"role-auditor": {
				"perm-ledger-view": true,
			},
		},
	}
}

func (m *mockAuthorizationStore) RoleIDForIdentity(ctx context.Context, identityID string) (string, error) {
	if m.returnError {
		return "", m.errorToReturn
	}
	return m.roleByIdentity[identityID], nil
}

func (m *mockAuthorizationStore) PermissionIDForCode(ctx context.Context, code string) (string, error) {
	if m.returnError {
		return "", m.errorToReturn
	}
	return m.permIDByCode[code], nil
}

func (m *mockAuthorizationStore) RoleHasPermission(ctx context.Context, roleID, permissionID string) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	return m.grants[roleID][permissionID], nil
}

var _ = ginkgo.Describe("Authorizer", func() {
	var (
		authorizer *Authorizer
		mockStore  *mockAuthorizationStore
		mockBus    *mockEventPublisher
	)

	ginkgo.BeforeEach(func() {
		mockStore = newMockAuthorizationStore()
		mockBus = &mockEventPublisher{}
		authorizer = NewAuthorizer(mockStore, mockBus, slog.Default(), time.Second)
	})

	ginkgo.Describe("HasPermission", func() {
		ginkgo.Context("when the identity's role carries the permission", func() {
			ginkgo.It("should return true", func() {
				// When
				granted, err := authorizer.HasPermission(context.Background(), "id-admin", "ledger.edit")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeTrue())
			})

			ginkgo.It("should grant only what the role carries", func() {
				// Given an auditor role that holds ledger.view but not ledger.edit
				granted, err := authorizer.HasPermission(context.Background(), "id-auditor", "ledger.view")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeTrue())

				granted, err = authorizer.HasPermission(context.Background(), "id-auditor", "ledger.edit")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("when any resolution step misses", func() {
			ginkgo.It("should deny for an empty identity id", func() {
				granted, err := authorizer.HasPermission(context.Background(), "", "ledger.view")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})

			ginkgo.It("should deny for an empty permission code", func() {
				granted, err := authorizer.HasPermission(context.Background(), "id-admin", "")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})

			ginkgo.It("should deny for an unknown identity", func() {
				granted, err := authorizer.HasPermission(context.Background(), "id-ghost", "ledger.view")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})

			ginkgo.It("should deny for an identity without a role", func() {
				granted, err := authorizer.HasPermission(context.Background(), "id-no-role", "ledger.view")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})

			ginkgo.It("should deny for an unknown permission code", func() {
				granted, err := authorizer.HasPermission(context.Background(), "id-admin", "no.such.permission")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})

			ginkgo.It("should deny when the role lacks the grant", func() {
				granted, err := authorizer.HasPermission(context.Background(), "id-auditor", "ledger.edit")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("when a role assignment changes", func() {
			ginkgo.It("should reflect the change on the next call", func() {
				// Given an auditor who cannot edit
				granted, err := authorizer.HasPermission(context.Background(), "id-auditor", "ledger.edit")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())

				// When the identity is reassigned to the admin role
				mockStore.roleByIdentity["id-auditor"] = "role-admin"

				// Then the very next check sees it
				granted, err = authorizer.HasPermission(context.Background(), "id-auditor", "ledger.edit")
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("when the store fails", func() {
			ginkgo.It("should return the store error", func() {
				// Given
				mockStore.returnError = true
				mockStore.errorToReturn = errors.New("database error")

				// When
				granted, err := authorizer.HasPermission(context.Background(), "id-admin", "ledger.view")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(granted).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("RequirePermission", func() {
		ginkgo.Context("when the permission is granted", func() {
			ginkgo.It("should return nil and publish nothing", func() {
				// When
				err := authorizer.RequirePermission(context.Background(), "id-admin", "ledger.view")

				// Then
				gomega.Expect(err).To(gomega.BeNil())
				gomega.Expect(mockBus.published).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the permission is denied", func() {
			ginkgo.It("should return a forbidden error naming identity and permission", func() {
				// When
				err := authorizer.RequirePermission(context.Background(), "id-auditor", "identity.manage")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeForbidden))

				details, ok := appErr.Details.(map[string]string)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(details["identity_id"]).To(gomega.Equal("id-auditor"))
				gomega.Expect(details["permission_code"]).To(gomega.Equal("identity.manage"))
			})

			ginkgo.It("should publish a permission denied event", func() {
				// When
				err := authorizer.RequirePermission(context.Background(), "id-auditor", "identity.manage")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(mockBus.eventTypes()).To(gomega.ContainElement(events.EventTypePermissionDenied))
			})
		})

		ginkgo.Context("when the store fails", func() {
			ginkgo.It("should return an internal error, not a denial", func() {
				// Given
				mockStore.returnError = true
				mockStore.errorToReturn = errors.New("database error")

				// When
				err := authorizer.RequirePermission(context.Background(), "id-admin", "ledger.view")

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
			})
		})
	})
})
