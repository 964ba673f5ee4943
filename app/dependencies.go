package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/auth"
	"github.com/courierhq/courier-backend/authz"
	"github.com/courierhq/courier-backend/config"
	"github.com/courierhq/courier-backend/internal/observability"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/repositories"
	"github.com/courierhq/courier-backend/repositories/postgres"
	"github.com/courierhq/courier-backend/services"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	DB      *postgres.DB
	Logger  *zap.Logger
	Metrics *observability.Metrics

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Authorization
	Catalog *authz.Catalog

	// Services
	Access   *services.AccessService
	Auth     *services.AuthService
	Projects *services.ProjectService

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Catalog: authz.DefaultCatalog(),
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initServices(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, schema, and repositories
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := d.DB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Repos = factory.NewRepositories()
	d.TxManager = factory.GetTransactionManager()

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))
	return nil
}

// initServices wires the pipeline services and auth middleware
func (d *Dependencies) initServices(cfg *config.Config) {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	d.Access = services.NewAccessService(d.Repos, d.Catalog, d.Logger)
	d.Auth = services.NewAuthService(d.Repos, hasher, cfg.Auth.SessionTTL, d.Logger)
	d.Projects = services.NewProjectService(d.Repos, cfg.Auth.SessionTTL, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Access, cfg.Auth.TenantHeader, d.Metrics, d.Logger)
}

// Close releases held resources
func (d *Dependencies) Close() error {
	if d.RepoFactory != nil {
		return d.RepoFactory.Close()
	}
	return nil
}
