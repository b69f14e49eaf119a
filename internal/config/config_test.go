package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"HTTP_PORT", "PORT", "DATABASE_URL", "POSTGRES_URL", "PGURL", "DATABASE_URL_FILE", "PGURL_FILE",
	"PGHOST", "POSTGRES_HOST", "PGUSER", "POSTGRES_USER", "PGPASSWORD", "POSTGRES_PASSWORD",
	"PGDATABASE", "POSTGRES_DB", "PGPORT", "POSTGRES_PORT", "PGSSLMODE",
	"CORS_ALLOWED_ORIGINS", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT", "SEED_DATA", "JWT_SECRET", "JWT_SECRET_FILE", "JWT_ISSUER", "JWT_AUDIENCE",
	"JWT_EXPIRY", "LOG_LEVEL", "LOG_FORMAT", "TRACING_EXPORTER", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"TRACING_SAMPLE_RATE", "JWT_LEEWAY", "DB_MAX_CONNS", "DB_MIN_CONNS",
}

var secret = strings.Repeat("s", MinSecretLength)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func noDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_DefaultsWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", secret)

	cfg, err := load(Default("authorization", "8080"), "", noDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "authorization", cfg.Service)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.JWT.Leeway)
	assert.Equal(t, "https://localhost:44375", cfg.JWT.Issuer)
	assert.Equal(t, "Admin", cfg.JWT.Audience)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.SeedData)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_MissingSecretFailsClosed(t *testing.T) {
	clearEnv(t)

	_, err := load(Default("players", "8081"), "", noDotEnv(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")

	t.Setenv("JWT_SECRET", "too-short")
	_, err = load(Default("players", "8081"), "", noDotEnv(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: "9090"
seed_data: false
allowed_origins: ["http://localhost:4200"]
shutdown_timeout: 3s
jwt:
  secret: `+secret+`
  issuer: https://issuer.example
  expiry: 30m
log:
  level: debug
  format: text
tracing:
  exporter: stdout
  sample_rate: 0.5
`), 0o600))

	t.Setenv("JWT_AUDIENCE", "Players")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("JWT_LEEWAY", "30s")
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "2")

	cfg, err := load(Default("sports", "8082"), path, noDotEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, secret, cfg.JWT.Secret)
	assert.Equal(t, "https://issuer.example", cfg.JWT.Issuer)
	assert.Equal(t, "Players", cfg.JWT.Audience)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
	assert.Equal(t, 0.5, cfg.Tracing.SampleRate)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.JWT.Leeway)
	assert.Equal(t, int32(8), cfg.DBMaxConns)
	assert.Equal(t, int32(2), cfg.DBMinConns)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt: [unclosed"), 0o600))

	_, err := load(Default("sports", "8082"), path, noDotEnv(t))
	assert.ErrorContains(t, err, "parse config file")

	_, err = load(Default("sports", "8082"), filepath.Join(t.TempDir(), "missing.yaml"), noDotEnv(t))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_SecretFile(t *testing.T) {
	clearEnv(t)

	secretPath := filepath.Join(t.TempDir(), "jwt.key")
	require.NoError(t, os.WriteFile(secretPath, []byte(secret+"\n"), 0o600))
	t.Setenv("JWT_SECRET_FILE", secretPath)

	cfg, err := load(Default("participation", "8083"), "", noDotEnv(t))
	require.NoError(t, err)
	assert.Equal(t, secret, cfg.JWT.Secret)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	dotEnv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotEnv, []byte(`
# shared settings
export JWT_SECRET="`+secret+`"
JWT_ISSUER='https://from-dotenv'
SEED_DATA=false
`), 0o600))
	t.Setenv("JWT_ISSUER", "https://from-env")

	cfg, err := load(Default("players", "8081"), "", dotEnv)
	require.NoError(t, err)
	assert.Equal(t, secret, cfg.JWT.Secret)
	assert.Equal(t, "https://from-env", cfg.JWT.Issuer)
	assert.False(t, cfg.SeedData)
}

func TestLoad_DotEnvMalformed(t *testing.T) {
	clearEnv(t)

	dotEnv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotEnv, []byte("NOT_A_PAIR\n"), 0o600))

	_, err := load(Default("players", "8081"), "", dotEnv)
	assert.ErrorContains(t, err, "missing '='")
}

func TestValidate(t *testing.T) {
	valid := Default("players", "8081")
	valid.JWT.Secret = secret
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no issuer", func(c *Config) { c.JWT.Issuer = "" }, "JWT_ISSUER"},
		{"no audience", func(c *Config) { c.JWT.Audience = "" }, "JWT_AUDIENCE"},
		{"zero expiry", func(c *Config) { c.JWT.Expiry = 0 }, "JWT_EXPIRY"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing exporter"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "sample rate"},
		{"port", func(c *Config) { c.HTTPPort = "" }, "http port"},
		{"leeway", func(c *Config) { c.JWT.Leeway = -time.Second }, "JWT_LEEWAY"},
		{"pool bounds", func(c *Config) { c.DBMaxConns, c.DBMinConns = 2, 4 }, "DB_MIN_CONNS"},
		{"negative pool", func(c *Config) { c.DBMaxConns = -1 }, "connection limits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolveDatabaseURL(t *testing.T) {
	clearEnv(t)
	assert.Empty(t, resolveDatabaseURL())

	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/sems")
	assert.Equal(t, "postgres://u:p@db:5432/sems", resolveDatabaseURL())

	t.Setenv("DATABASE_URL", "")
	t.Setenv("PGHOST", "db")
	t.Setenv("PGUSER", "sems")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGDATABASE", "events")
	assert.Equal(t, "postgres://sems:secret@db:5432/events?sslmode=prefer", resolveDatabaseURL())
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,"))
	assert.Equal(t, []string{"*"}, splitCSV(" , "))
}
