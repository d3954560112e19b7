package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skenwise/Loan-Management-System/internal"
	"github.com/Skenwise/Loan-Management-System/internal/audit"
	auditPostgres "github.com/Skenwise/Loan-Management-System/internal/audit/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/auth"
	authPostgres "github.com/Skenwise/Loan-Management-System/internal/auth/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/core/events"
	"github.com/Skenwise/Loan-Management-System/internal/currency"
	currencyPostgres "github.com/Skenwise/Loan-Management-System/internal/currency/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/identity"
	identityPostgres "github.com/Skenwise/Loan-Management-System/internal/identity/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/observability"
	"github.com/Skenwise/Loan-Management-System/internal/rbac"
	rbacPostgres "github.com/Skenwise/Loan-Management-System/internal/rbac/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/tenant"
	tenantPostgres "github.com/Skenwise/Loan-Management-System/internal/tenant/postgres"
	"github.com/Skenwise/Loan-Management-System/internal/transport"
	"github.com/Skenwise/Loan-Management-System/internal/transport/rest"
	"github.com/Skenwise/Loan-Management-System/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	DB      *sqlx.DB
	Router  *chi.Mux
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm repositories share the pooled connection sqlx manages.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(log)

	authRepo := authPostgres.NewRepository(gormDB)
	identityRepo := identityPostgres.NewIdentityRepository(gormDB)
	rbacRepo := rbacPostgres.NewRBACRepository(gormDB)
	tenantRepo := tenantPostgres.NewTenantRepository(gormDB)
	currencyRepo := currencyPostgres.NewCurrencyRepository(gormDB)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)

	tokenGenerator := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.TokenLifetime)
	passwords := auth.NewPasswordManager(config.Security.BCryptCost)

	authService := auth.NewService(authRepo, tokenGenerator, passwords, bus, log, config.Security.StoreTimeout)
	authorizer := auth.NewAuthorizer(authRepo, bus, log, config.Security.StoreTimeout)
	authz := auth.NewRBACAuthorization(authorizer, log)

	identityService := identity.NewService(identityRepo, rbacRepo, passwords, log)
	rbacService := rbac.NewService(rbacRepo, log)
	tenantService := tenant.NewService(tenantRepo, log)
	currencyService := currency.NewService(currencyRepo, log)
	auditService := audit.NewService(auditRepo, log)

	audit.NewEventHandler(auditService, log).RegisterEventHandlers(bus)

	base := transport.NewBaseHandler(log)
	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		Authz:    authz,
		Identity: identity.NewHandler(identityService),
		RBAC:     rbac.NewHandler(base, rbacService),
		Tenant:   tenant.NewHandler(base, tenantService),
		Currency: currency.NewHandler(base, currencyService),
		Audit:    audit.NewHandler(base, auditService),
	}

	var metrics *observability.Metrics
	if config.Observability.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, config, metrics, handlers, log)

	return &Dependencies{
		Config:  config,
		Logger:  log,
		DB:      db,
		Router:  router,
		Metrics: metrics,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
