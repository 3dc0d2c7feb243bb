package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "tienda", cfg.MongoDBName)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestValidate_EmptyJWTSecret(t *testing.T) {
	assert.Error(t, Config{AppEnv: "prod", JWTSecret: ""}.Validate())
	assert.NoError(t, Config{AppEnv: "dev", JWTSecret: ""}.Validate())
	assert.NoError(t, Config{AppEnv: "prod", JWTSecret: "s3cret"}.Validate())
}
