package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/paynotify/internal/domain/classifier"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/dynamic"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/handler"
	"github.com/FACorreiaa/paynotify/internal/domain/classifier/parser"
	"github.com/FACorreiaa/paynotify/pkg/config"
	"github.com/FACorreiaa/paynotify/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	PatternRepo dynamic.PatternRepository
	AuditRepo   dynamic.AuditRepository

	// Services
	PatternCache  *dynamic.Cache
	DynamicEngine *dynamic.Engine
	Router        *parser.Router
	ClassifierSvc *classifier.Service

	// Handlers
	ClassifyHandler *handler.ClassifyHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() error {
	d.PatternRepo = dynamic.NewPostgresPatternRepository(d.DB.Pool)
	d.AuditRepo = dynamic.NewPostgresAuditRepository(d.DB.Pool)

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.PatternCache = dynamic.NewCache(d.PatternRepo, d.Config.Classifier.PatternCacheTTL, d.Logger)
	d.DynamicEngine = dynamic.NewEngine(d.PatternCache, d.AuditRepo, d.Config.Classifier.AuditSampleRate, d.Logger)
	d.Router = parser.NewRouter(d.Logger)
	d.ClassifierSvc = classifier.NewService(d.Router, d.DynamicEngine, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.ClassifyHandler = handler.NewClassifyHandler(d.ClassifierSvc, d.DynamicEngine, d.Logger)

	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
