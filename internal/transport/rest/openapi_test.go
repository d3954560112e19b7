package rest_test

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "REST Transport Suite")
}

var _ = ginkgo.Describe("OpenAPI document", func() {
	var doc *openapi3.T

	ginkgo.BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(doc.Validate(loader.Context)).To(gomega.Succeed())
	})

	ginkgo.It("should document every registered route", func() {
		routes := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/ping"},
			{http.MethodGet, "/health"},
			{http.MethodPost, "/auth/login"},
			{http.MethodPost, "/auth/logout"},
			{http.MethodGet, "/users/me"},
			{http.MethodPost, "/identities"},
			{http.MethodGet, "/identities"},
			{http.MethodGet, "/identities/{id}"},
			{http.MethodGet, "/identities/username/{username}"},
			{http.MethodPatch, "/identities/{id}"},
			{http.MethodPut, "/identities/{id}/password"},
			{http.MethodPut, "/identities/{id}/role"},
			{http.MethodDelete, "/identities/{id}/role"},
			{http.MethodDelete, "/identities/{id}"},
			{http.MethodGet, "/roles"},
			{http.MethodGet, "/roles/{id}"},
			{http.MethodGet, "/roles/name/{name}"},
			{http.MethodGet, "/permissions"},
			{http.MethodGet, "/permissions/{code}"},
			{http.MethodGet, "/permissions/{code}/roles"},
			{http.MethodPost, "/tenants"},
			{http.MethodGet, "/tenants"},
			{http.MethodGet, "/tenants/{id}"},
			{http.MethodGet, "/tenants/code/{code}"},
			{http.MethodPatch, "/tenants/{id}"},
			{http.MethodDelete, "/tenants/{id}"},
			{http.MethodGet, "/currencies"},
			{http.MethodGet, "/currencies/convert"},
			{http.MethodGet, "/currencies/{code}"},
			{http.MethodPost, "/currencies"},
			{http.MethodGet, "/exchange-rates"},
			{http.MethodGet, "/exchange-rates/{base}/{quote}/latest"},
			{http.MethodPost, "/exchange-rates"},
			{http.MethodPost, "/exchange-rates/revalue"},
			{http.MethodGet, "/audit/events"},
		}

		for _, route := range routes {
			item := doc.Paths.Find(route.path)
			gomega.Expect(item).NotTo(gomega.BeNil(), "path %s is missing", route.path)
			gomega.Expect(item.GetOperation(route.method)).NotTo(gomega.BeNil(),
				"operation %s %s is missing", route.method, route.path)
		}
	})

	ginkgo.It("should require bearer auth by default and exempt the public endpoints", func() {
		gomega.Expect(doc.Security).To(gomega.HaveLen(1))
		gomega.Expect(doc.Security[0]).To(gomega.HaveKey("bearerAuth"))

		for _, public := range []string{"/ping", "/health", "/auth/login", "/auth/logout"} {
			item := doc.Paths.Find(public)
			gomega.Expect(item).NotTo(gomega.BeNil(), "path %s is missing", public)
			for _, op := range item.Operations() {
				gomega.Expect(op.Security).NotTo(gomega.BeNil(),
					"expected %s to override the global security requirement", public)
				gomega.Expect(*op.Security).To(gomega.BeEmpty())
			}
		}
	})

	ginkgo.It("should declare the api prefix as server url", func() {
		gomega.Expect(doc.Servers).NotTo(gomega.BeEmpty())
		gomega.Expect(doc.Servers[0].URL).To(gomega.Equal("/api/v1"))
	})
})
