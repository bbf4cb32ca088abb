package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Store backends selectable with STORE_BACKEND.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	StoreBackend    string
	DatabaseURL     string
	SQLitePath      string
	SeedMessages    bool
	// SeedMessagesSet records that SEED_MESSAGES was given explicitly rather than defaulted
	// from the backend.
	SeedMessagesSet bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	backend := normalizeStoreBackend(os.Getenv("STORE_BACKEND"), dbURL)

	if env == "production" && backend == StoreMemory {
		log.Printf("STORE_BACKEND=memory in production; data will not survive restarts")
	}

	seed, seedSet := lookupEnvBool("SEED_MESSAGES")
	if !seedSet {
		seed = backend == StoreMemory
	}

	return Config{
		Port:            getEnv("PORT", "5000"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		StoreBackend:    backend,
		DatabaseURL:     dbURL,
		SQLitePath:      getEnv("SQLITE_PATH", "file:gallery.db?_pragma=busy_timeout(5000)"),
		SeedMessages:    seed,
		SeedMessagesSet: seedSet,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// lookupEnvBool reports the boolean value of key and whether it was set to a valid value.
func lookupEnvBool(key string) (val, ok bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool: %v", key, err)
		return false, false
	}
	return val, true
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeStoreBackend picks postgres when only DATABASE_URL is set.
func normalizeStoreBackend(raw, databaseURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pg":
		return StorePostgres
	case "sqlite", "sqlite3":
		return StoreSQLite
	case "memory", "mem":
		return StoreMemory
	}
	if strings.TrimSpace(databaseURL) != "" {
		return StorePostgres
	}
	return StoreMemory
}
