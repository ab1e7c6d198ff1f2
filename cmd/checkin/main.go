package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lisahealth/checkin/internal/api"
	"github.com/lisahealth/checkin/internal/store"
	"github.com/lisahealth/checkin/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for check-in state data
	DefaultStateDir = "/var/lib/checkin"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "checkin.db"
)

// Config holds environment configuration
type Config struct {
	DBDriver  string
	DBDSN     string
	RedisAddr string
	StateDir  string
	APIAddr   string
	Debug     bool
}

// Flags holds command line flag values
type Flags struct {
	dbDriver  *string
	dbDSN     *string
	redisAddr *string
	stateDir  *string
	apiAddr   *string
}

func main() {
	config := loadEnvironmentConfig()
	initializeLogger(config.Debug)
	flags := parseCommandLineFlags(config)

	st, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize session record store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	slog.Info("Bootstrapping check-in service",
		"driver", *flags.dbDriver, "api_addr", *flags.apiAddr)
	if err := api.Run(st, api.WithAddr(*flags.apiAddr)); err != nil {
		slog.Error("Check-in service failed to run", "error", err)
		os.Exit(1)
	}
}

// initializeLogger sets up structured logging.
func initializeLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	config := Config{
		DBDriver:  util.EnvOrDefault("CHECKIN_DB_DRIVER", "memory"),
		DBDSN:     os.Getenv("CHECKIN_DB_DSN"),
		RedisAddr: os.Getenv("CHECKIN_REDIS_ADDR"),
		StateDir:  util.EnvOrDefault("CHECKIN_STATE_DIR", DefaultStateDir),
		APIAddr:   util.EnvOrDefault("CHECKIN_API_ADDR", api.DefaultAddr),
		Debug:     util.ParseBoolEnv("CHECKIN_DEBUG", false),
	}
	return config
}

// parseCommandLineFlags parses flags with environment values as defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		dbDriver:  flag.String("db-driver", config.DBDriver, "session record store driver: memory, sqlite, postgres, or redis"),
		dbDSN:     flag.String("db-dsn", config.DBDSN, "database DSN (file path for sqlite, connection string for postgres)"),
		redisAddr: flag.String("redis-addr", config.RedisAddr, "redis server address, e.g. localhost:6379"),
		stateDir:  flag.String("state-dir", config.StateDir, "directory for state data"),
		apiAddr:   flag.String("api-addr", config.APIAddr, "API listen address"),
	}
	flag.Parse()
	return flags
}

// buildStore constructs the session record store for the selected driver.
func buildStore(flags Flags) (store.Store, error) {
	switch *flags.dbDriver {
	case "sqlite":
		dsn := *flags.dbDSN
		if dsn == "" {
			dsn = filepath.Join(*flags.stateDir, DefaultDBFileName)
			slog.Debug("No DSN set for sqlite driver, using default", "dsn", dsn)
		}
		return store.NewSQLiteStore(store.WithDSN(dsn))
	case "postgres":
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: *flags.redisAddr})
		return store.NewRedisStore(client)
	default:
		slog.Debug("Using in-memory session record store")
		return store.NewInMemoryStore(), nil
	}
}
