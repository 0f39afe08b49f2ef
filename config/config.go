package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppEnv string
	Port   string

	DB DBConfig

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	LogLevel  string
	LogFormat string

	// Seed loads the default staff account, room types and rooms on start.
	Seed bool
}

type DBConfig struct {
	Driver string
	DSN    string
	Name   string

	// LogLevel is the gorm logger level: silent, error, warn or info.
	LogLevel string
}

func (c Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "dev" || c.AppEnv == "development"
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(envOrDefault("JWT_TTL", "8h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	db, err := resolveDB()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:      envOrDefault("APP_ENV", "dev"),
		Port:        envOrDefault("PORT", "8080"),
		DB:          db,
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTTTL:      ttl,
		CORSOrigins: envList("CORS_ORIGINS", "*"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
		Seed:        envBool("SEED", false),
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return Config{}, fmt.Errorf("JWT_SECRET environment variable is not set")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	parts := strings.Split(envOrDefault(key, fallbackCSV), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resolveDB() (DBConfig, error) {
	driver := strings.ToLower(envOrDefault("DB_DRIVER", DriverMySQL))
	logLevel := envOrDefault("DB_LOG_LEVEL", "warn")

	switch driver {
	case DriverSQLite:
		return DBConfig{
			Driver:   DriverSQLite,
			DSN:      envOrDefault("SQLITE_PATH", "hostel.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			LogLevel: logLevel,
		}, nil
	case DriverMySQL:
		dsn, name, err := resolveMySQLDSN()
		if err != nil {
			return DBConfig{}, err
		}
		return DBConfig{Driver: DriverMySQL, DSN: dsn, Name: name, LogLevel: logLevel}, nil
	default:
		return DBConfig{}, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hostel_management")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}
