package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/audit"
	"github.com/Skenwise/Loan-Management-System/internal/auth"
	"github.com/Skenwise/Loan-Management-System/internal/currency"
	"github.com/Skenwise/Loan-Management-System/internal/identity"
	"github.com/Skenwise/Loan-Management-System/internal/observability"
	"github.com/Skenwise/Loan-Management-System/internal/rbac"
	"github.com/Skenwise/Loan-Management-System/internal/tenant"
	"github.com/Skenwise/Loan-Management-System/internal/transport/middleware"
	"github.com/Skenwise/Loan-Management-System/internal/transport/swagger"
)

type Handlers struct {
	Auth     *auth.Handler
	Authz    *auth.RBACAuthorization
	Identity *identity.Handler
	RBAC     *rbac.Handler
	Tenant   *tenant.Handler
	Currency *currency.Handler
	Audit    *audit.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, metrics *observability.Metrics, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	authz := handlers.Authz

	// Apply global middleware
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Observability.Metrics.Enabled {
		router.Use(metrics.Middleware)
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, metrics.Handler())
	}

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes; login is rate limited per client IP
		if handlers.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Group(func(lr chi.Router) {
					lr.Use(httprate.LimitByIP(cfg.Server.LoginRateLimit, time.Minute))
					lr.Post("/login", handlers.Auth.Login)
				})
				sr.Post("/logout", handlers.Auth.Logout)
			})
		}

		if handlers.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			// Current identity from verified claims, no extra permission
			if handlers.Identity != nil {
				pr.Get("/users/me", handlers.Identity.GetCurrentIdentity)
			}

			// Identity administration
			if handlers.Identity != nil {
				pr.Route("/identities", func(ir chi.Router) {
					ir.Use(authz.RequireIdentityManage())
					ir.Post("/", handlers.Identity.CreateIdentity)
					ir.Get("/", handlers.Identity.ListIdentities)
					ir.Get("/{id}", handlers.Identity.GetIdentity)
					ir.Get("/username/{username}", handlers.Identity.GetIdentityByUsername)
					ir.Patch("/{id}", handlers.Identity.UpdateIdentity)
					ir.Put("/{id}/password", handlers.Identity.ChangePassword)
					ir.Put("/{id}/role", handlers.Identity.AssignRole)
					ir.Delete("/{id}/role", handlers.Identity.RemoveRole)
					ir.Delete("/{id}", handlers.Identity.DeleteIdentity)
				})
			}

			// Role and permission catalog, read only
			if handlers.RBAC != nil {
				pr.Group(func(rr chi.Router) {
					rr.Use(authz.RequireIdentityManage())
					rr.Get("/roles", handlers.RBAC.ListRoles)
					rr.Get("/roles/{id}", handlers.RBAC.GetRole)
					rr.Get("/roles/name/{name}", handlers.RBAC.GetRoleByName)
					rr.Get("/permissions", handlers.RBAC.ListPermissions)
					rr.Get("/permissions/{code}", handlers.RBAC.GetPermission)
					rr.Get("/permissions/{code}/roles", handlers.RBAC.GetRolesForPermission)
				})
			}

			// Tenant administration
			if handlers.Tenant != nil {
				pr.Route("/tenants", func(tr chi.Router) {
					tr.Use(authz.RequireTenantManage())
					tr.Post("/", handlers.Tenant.CreateTenant)
					tr.Get("/", handlers.Tenant.ListTenants)
					tr.Get("/{id}", handlers.Tenant.GetTenant)
					tr.Get("/code/{code}", handlers.Tenant.GetTenantByCode)
					tr.Patch("/{id}", handlers.Tenant.UpdateTenant)
					tr.Delete("/{id}", handlers.Tenant.DeleteTenant)
				})
			}

			// Currency and FX: reads need ledger.view, writes currency.manage
			if handlers.Currency != nil {
				pr.Group(func(cr chi.Router) {
					cr.Use(authz.RequireLedgerView())
					cr.Get("/currencies", handlers.Currency.ListCurrencies)
					cr.Get("/currencies/convert", handlers.Currency.Convert)
					cr.Get("/currencies/{code}", handlers.Currency.GetCurrency)
					cr.Get("/exchange-rates", handlers.Currency.ListExchangeRates)
					cr.Get("/exchange-rates/{base}/{quote}/latest", handlers.Currency.GetLatestRate)
					cr.Post("/exchange-rates/revalue", handlers.Currency.RevalueBalance)
				})
				pr.Group(func(cr chi.Router) {
					cr.Use(authz.RequireCurrencyManage())
					cr.Post("/currencies", handlers.Currency.CreateCurrency)
					cr.Post("/exchange-rates", handlers.Currency.CreateExchangeRate)
				})
			}

			// Audit trail
			if handlers.Audit != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(authz.RequireAuditView())
					ar.Get("/audit/events", handlers.Audit.ListAuditEvents)
				})
			}
		})
	})
}
