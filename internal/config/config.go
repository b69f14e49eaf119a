package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MinSecretLength is the shortest accepted HS256 signing secret, in bytes.
const MinSecretLength = 32

// Config centralises runtime configuration of one service process.
type Config struct {
	Service         string        `yaml:"service"`
	HTTPPort        string        `yaml:"http_port"`
	DatabaseURL     string        `yaml:"database_url"`
	DBMaxConns      int32         `yaml:"db_max_conns"`
	DBMinConns      int32         `yaml:"db_min_conns"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SeedData        bool          `yaml:"seed_data"`
	JWT             JWTConfig     `yaml:"jwt"`
	Log             LogConfig     `yaml:"log"`
	Tracing         TracingConfig `yaml:"tracing"`
}

// JWTConfig carries the token settings every service must share.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	SecretFile string        `yaml:"secret_file"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	Expiry     time.Duration `yaml:"expiry"`
	Leeway     time.Duration `yaml:"leeway"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig selects the span exporter.
type TracingConfig struct {
	Exporter   string  `yaml:"exporter"`
	Endpoint   string  `yaml:"endpoint"`
	SampleRate float64 `yaml:"sample_rate"`
}

// Default returns the built-in settings for service listening on port.
func Default(service, port string) Config {
	return Config{
		Service:         service,
		HTTPPort:        port,
		AllowedOrigins:  []string{"*"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SeedData:        true,
		JWT: JWTConfig{
			Issuer:   "https://localhost:44375",
			Audience: "Admin",
			Expiry:   time.Hour,
			Leeway:   5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Exporter:   "none",
			SampleRate: 1,
		},
	}
}

// Load layers an optional YAML file, a .env file and the environment over base,
// then validates the result. An empty path skips the YAML layer.
func Load(base Config, path string) (Config, error) {
	return load(base, path, ".env")
}

func load(cfg Config, path, dotEnvPath string) (Config, error) {
	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := loadDotEnv(dotEnvPath); err != nil {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	applyEnv(&cfg)

	if cfg.JWT.Secret == "" && cfg.JWT.SecretFile != "" {
		data, err := os.ReadFile(cfg.JWT.SecretFile)
		if err != nil {
			return Config{}, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWT.Secret = strings.TrimSpace(string(data))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPPort = getEnv("HTTP_PORT", getEnv("PORT", cfg.HTTPPort))
	if url := resolveDatabaseURL(); url != "" {
		cfg.DatabaseURL = url
	}
	cfg.DBMaxConns = getInt32Env("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.DBMinConns = getInt32Env("DB_MIN_CONNS", cfg.DBMinConns)
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitCSV(origins)
	}
	cfg.ReadTimeout = getDurationEnv("HTTP_READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getDurationEnv("HTTP_WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.IdleTimeout = getDurationEnv("HTTP_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.ShutdownTimeout = getDurationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.SeedData = getBoolEnv("SEED_DATA", cfg.SeedData)

	cfg.JWT.Secret = getEnv("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.SecretFile = getEnv("JWT_SECRET_FILE", cfg.JWT.SecretFile)
	cfg.JWT.Issuer = getEnv("JWT_ISSUER", cfg.JWT.Issuer)
	cfg.JWT.Audience = getEnv("JWT_AUDIENCE", cfg.JWT.Audience)
	cfg.JWT.Expiry = getDurationEnv("JWT_EXPIRY", cfg.JWT.Expiry)
	cfg.JWT.Leeway = getDurationEnv("JWT_LEEWAY", cfg.JWT.Leeway)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Tracing.Exporter = getEnv("TRACING_EXPORTER", cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SampleRate = getFloatEnv("TRACING_SAMPLE_RATE", cfg.Tracing.SampleRate)
}

// Validate rejects configurations a service must not start with.
func (c Config) Validate() error {
	var errs []error
	if c.Service == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http port is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if len(c.JWT.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.JWT.Issuer == "" {
		errs = append(errs, errors.New("JWT_ISSUER is required"))
	}
	if c.JWT.Audience == "" {
		errs = append(errs, errors.New("JWT_AUDIENCE is required"))
	}
	if c.JWT.Expiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY must be positive"))
	}
	if c.DBMaxConns < 0 || c.DBMinConns < 0 {
		errs = append(errs, errors.New("database connection limits must not be negative"))
	} else if c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS %d exceeds DB_MAX_CONNS %d", c.DBMinConns, c.DBMaxConns))
	}
	if c.JWT.Leeway < 0 {
		errs = append(errs, errors.New("JWT_LEEWAY must not be negative"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format: %q", c.Log.Format))
	}
	switch strings.ToLower(c.Tracing.Exporter) {
	case "", "none", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("unknown tracing exporter: %q", c.Tracing.Exporter))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("tracing sample rate must be between 0 and 1, got %v", c.Tracing.SampleRate))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func getInt32Env(key string, fallback int32) int32 {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if n, err := strconv.ParseInt(val, 10, 32); err == nil {
			return int32(n)
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return []string{"*"}
	}
	return parts
}
