package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"gallery-backend/internal/images"
	"gallery-backend/internal/messages"
	"gallery-backend/internal/shared/config"
	"gallery-backend/internal/shared/server"
	"gallery-backend/internal/shared/storage/db"
	"gallery-backend/internal/store"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           store.Store
	ImagesService   *images.Service
	MessagesService *messages.Service
	ImageHandler    *images.Handler
	MessageHandler  *messages.Handler
}

// Build prepares the store, services and router. The store is created once here and shared by
// every request.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StoreBackend) == "" {
		cfg.StoreBackend = config.StoreMemory
	}
	ctx := context.Background()

	sqlDB, backend, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if backend != cfg.StoreBackend && !cfg.SeedMessagesSet {
		// Seeding follows the backend actually in use.
		cfg.SeedMessages = backend == config.StoreMemory
	}
	cfg.StoreBackend = backend

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  buildStore(cfg, sqlDB),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		ImageHandler:   app.ImageHandler,
		MessageHandler: app.MessageHandler,
	})
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// buildDB connects and migrates the relational backend. In dev-like environments an unreachable
// database falls back to the in-memory store.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	var driver, dsn string
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return nil, config.StoreMemory, nil
	case config.StorePostgres:
		driver, dsn = db.DriverPostgres, cfg.DatabaseURL
	case config.StoreSQLite:
		driver, dsn = db.DriverSQLite, cfg.SQLitePath
	default:
		return nil, "", fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	sqlDB, err := db.Connect(ctx, driver, dsn, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, driver); err != nil {
			sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: %s store unavailable; using in-memory store: %v", cfg.StoreBackend, err)
			return nil, config.StoreMemory, nil
		}
		return nil, "", err
	}
	return sqlDB, cfg.StoreBackend, nil
}

func buildStore(cfg config.Config, sqlDB *sql.DB) store.Store {
	if sqlDB == nil {
		var seed []string
		if cfg.SeedMessages {
			seed = store.DefaultMessages
		}
		return store.NewMemoryStore(seed...)
	}
	driver := db.DriverPostgres
	if cfg.StoreBackend == config.StoreSQLite {
		driver = db.DriverSQLite
	}
	return store.NewSQLStore(sqlDB, driver)
}

func buildServices(app *App) {
	app.ImagesService = images.NewService(app.Store)
	app.MessagesService = messages.NewService(app.Store)
	app.ImageHandler = images.NewHandler(app.ImagesService)
	app.MessageHandler = messages.NewHandler(app.MessagesService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
