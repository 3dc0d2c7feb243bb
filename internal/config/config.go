package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort string

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	CatalogDBPath  string
	MigrationsPath string

	KafkaBrokers []string

	JWTSecret string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "tienda"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "catalog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		KafkaBrokers:    getEnvList("KAFKA_BROKERS"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate rejects configurations that must not reach a deployed
// environment. An empty JWT secret makes tokens signed with an empty
// key verify, so outside dev it is a startup error rather than a
// silently open gateway.
func (c Config) Validate() error {
	if c.JWTSecret == "" && c.AppEnv != "dev" {
		return errors.New("JWT_SECRET must be set when APP_ENV is not dev")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvList splits a comma separated value; an unset key means the feature
// that needs it is disabled.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
