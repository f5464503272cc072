package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Generator GeneratorConfig
	S3        S3Config
	Ingest    IngestConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds SQLite database settings.
type DBConfig struct {
	Path          string `mapstructure:"path"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
	MaxOpen       int    `mapstructure:"max_open"`
}

// DSN returns the go-sqlite3 connection string with foreign keys enabled.
func (d *DBConfig) DSN() string {
	sep := "?"
	if strings.Contains(d.Path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_foreign_keys=on&_busy_timeout=%d", d.Path, sep, d.BusyTimeoutMS)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single NL-to-SQL provider.
type ProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// GeneratorConfig holds the SQL generator chain. Secondary is optional and is
// tried when the primary fails.
type GeneratorConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// Providers returns the configured providers in fallback order.
func (g *GeneratorConfig) Providers() []*ProviderConfig {
	out := []*ProviderConfig{&g.Primary}
	if g.Secondary.Provider != "" {
		out = append(out, &g.Secondary)
	}
	return out
}

// S3Config holds AWS S3 settings used for s3:// ingest sources.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// IngestConfig holds normalizer settings.
type IngestConfig struct {
	Source string `mapstructure:"source"`
}

// Load reads configuration from environment variables with the FINDASH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FINDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.path", "financial_dashboard.db")
	v.SetDefault("db.busy_timeout_ms", 5000)
	v.SetDefault("db.max_open", 1)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Generator defaults
	v.SetDefault("generator.primary.provider", "vanna")
	v.SetDefault("generator.primary.api_key", "")
	v.SetDefault("generator.primary.model", "chinook")
	v.SetDefault("generator.primary.endpoint", "")
	v.SetDefault("generator.primary.timeout_secs", 60)
	v.SetDefault("generator.secondary.provider", "")
	v.SetDefault("generator.secondary.api_key", "")
	v.SetDefault("generator.secondary.model", "")
	v.SetDefault("generator.secondary.endpoint", "")
	v.SetDefault("generator.secondary.timeout_secs", 60)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("ingest.source", "Analytics_Test_Data.json")

	envBindings := map[string]string{
		"server.port":                      "FINDASH_SERVER_PORT",
		"server.read_timeout":              "FINDASH_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "FINDASH_SERVER_WRITE_TIMEOUT",
		"server.environment":               "FINDASH_SERVER_ENVIRONMENT",
		"db.path":                          "FINDASH_DB_PATH",
		"db.busy_timeout_ms":               "FINDASH_DB_BUSY_TIMEOUT_MS",
		"db.max_open":                      "FINDASH_DB_MAX_OPEN",
		"log.level":                        "FINDASH_LOG_LEVEL",
		"log.format":                       "FINDASH_LOG_FORMAT",
		"cors.allowed_origins":             "FINDASH_CORS_ALLOWED_ORIGINS",
		"generator.primary.provider":       "FINDASH_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":        "FINDASH_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.model":          "FINDASH_GENERATOR_PRIMARY_MODEL",
		"generator.primary.endpoint":       "FINDASH_GENERATOR_PRIMARY_ENDPOINT",
		"generator.primary.timeout_secs":   "FINDASH_GENERATOR_PRIMARY_TIMEOUT_SECS",
		"generator.secondary.provider":     "FINDASH_GENERATOR_SECONDARY_PROVIDER",
		"generator.secondary.api_key":      "FINDASH_GENERATOR_SECONDARY_API_KEY",
		"generator.secondary.model":        "FINDASH_GENERATOR_SECONDARY_MODEL",
		"generator.secondary.endpoint":     "FINDASH_GENERATOR_SECONDARY_ENDPOINT",
		"generator.secondary.timeout_secs": "FINDASH_GENERATOR_SECONDARY_TIMEOUT_SECS",
		"s3.region":                        "FINDASH_S3_REGION",
		"s3.endpoint":                      "FINDASH_S3_ENDPOINT",
		"s3.access_key":                    "FINDASH_S3_ACCESS_KEY",
		"s3.secret_key":                    "FINDASH_S3_SECRET_KEY",
		"ingest.source":                    "FINDASH_INGEST_SOURCE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FINDASH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Path:          v.GetString("db.path"),
		BusyTimeoutMS: v.GetInt("db.busy_timeout_ms"),
		MaxOpen:       v.GetInt("db.max_open"),
	}
	if cfg.DB.Path == "" {
		return nil, fmt.Errorf("db.path must not be empty")
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Generator = GeneratorConfig{
		Primary: ProviderConfig{
			Provider:    v.GetString("generator.primary.provider"),
			APIKey:      v.GetString("generator.primary.api_key"),
			Model:       v.GetString("generator.primary.model"),
			Endpoint:    v.GetString("generator.primary.endpoint"),
			TimeoutSecs: v.GetInt("generator.primary.timeout_secs"),
		},
		Secondary: ProviderConfig{
			Provider:    v.GetString("generator.secondary.provider"),
			APIKey:      v.GetString("generator.secondary.api_key"),
			Model:       v.GetString("generator.secondary.model"),
			Endpoint:    v.GetString("generator.secondary.endpoint"),
			TimeoutSecs: v.GetInt("generator.secondary.timeout_secs"),
		},
	}

	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	cfg.Ingest = IngestConfig{
		Source: v.GetString("ingest.source"),
	}

	return cfg, nil
}
