package main

// Run database migrations:
//   STORE_BACKEND=postgres DATABASE_URL=... go run ./cmd/migrate
//   STORE_BACKEND=sqlite SQLITE_PATH=gallery.db go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"gallery-backend/internal/shared/config"
	"gallery-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	driver, dsn := db.DriverPostgres, cfg.DatabaseURL
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		driver, dsn = db.DriverSQLite, cfg.SQLitePath
	case config.StoreMemory:
		log.Printf("STORE_BACKEND=memory has no schema to migrate")
		return
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, driver, dsn, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, driver); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied (%s)", driver)
}
