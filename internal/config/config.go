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
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	OCR       OCRConfig
	Extract   ExtractConfig
	Generator GeneratorConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for uploaded documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
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

// OCRConfig holds Tesseract engine settings.
type OCRConfig struct {
	Language      string        `mapstructure:"language"`
	Workers       int           `mapstructure:"workers"`
	UnitTimeout   time.Duration `mapstructure:"unit_timeout"`
	MinConfidence float64       `mapstructure:"min_confidence"`
}

// ExtractConfig holds document adapter settings.
type ExtractConfig struct {
	MaxPDFPages   int `mapstructure:"max_pdf_pages"`
	MinTextLayer  int `mapstructure:"min_text_layer"`
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

// ProviderConfig holds settings for a single LLM question-generation provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GeneratorConfig holds LLM question generation settings.
type GeneratorConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (g *GeneratorConfig) SecondaryConfig() *ProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
}

// Load reads configuration from environment variables with the QUIZGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUIZGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quizgen")
	v.SetDefault("db.password", "quizgen_secret")
	v.SetDefault("db.name", "quizgen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "quizgen-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// OCR defaults
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.workers", 0) // 0 = NumCPU
	v.SetDefault("ocr.unit_timeout", "90s")
	v.SetDefault("ocr.min_confidence", 0.4)

	// Extract defaults
	v.SetDefault("extract.max_pdf_pages", 10)
	v.SetDefault("extract.min_text_layer", 50)
	v.SetDefault("extract.max_concurrent", 4)

	// Generator defaults
	v.SetDefault("generator.primary.provider", "groq")
	v.SetDefault("generator.primary.api_key", "")
	v.SetDefault("generator.primary.default_model", "llama-3.1-8b-instant")
	v.SetDefault("generator.primary.max_retries", 2)
	v.SetDefault("generator.primary.timeout_secs", 120)
	v.SetDefault("generator.secondary.provider", "")
	v.SetDefault("generator.secondary.api_key", "")
	v.SetDefault("generator.secondary.default_model", "")
	v.SetDefault("generator.secondary.max_retries", 2)
	v.SetDefault("generator.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "QUIZGEN_SERVER_PORT",
		"server.read_timeout":               "QUIZGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "QUIZGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":                "QUIZGEN_SERVER_ENVIRONMENT",
		"db.host":                           "QUIZGEN_DB_HOST",
		"db.port":                           "QUIZGEN_DB_PORT",
		"db.user":                           "QUIZGEN_DB_USER",
		"db.password":                       "QUIZGEN_DB_PASSWORD",
		"db.name":                           "QUIZGEN_DB_NAME",
		"db.sslmode":                        "QUIZGEN_DB_SSLMODE",
		"db.max_open":                       "QUIZGEN_DB_MAX_OPEN",
		"db.max_idle":                       "QUIZGEN_DB_MAX_IDLE",
		"s3.region":                         "QUIZGEN_S3_REGION",
		"s3.bucket":                         "QUIZGEN_S3_BUCKET",
		"s3.endpoint":                       "QUIZGEN_S3_ENDPOINT",
		"s3.access_key":                     "QUIZGEN_S3_ACCESS_KEY",
		"s3.secret_key":                     "QUIZGEN_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "QUIZGEN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "QUIZGEN_S3_PRESIGN_EXPIRY",
		"log.level":                         "QUIZGEN_LOG_LEVEL",
		"log.format":                        "QUIZGEN_LOG_FORMAT",
		"cors.allowed_origins":              "QUIZGEN_CORS_ALLOWED_ORIGINS",
		"ocr.language":                      "QUIZGEN_OCR_LANGUAGE",
		"ocr.workers":                       "QUIZGEN_OCR_WORKERS",
		"ocr.unit_timeout":                  "QUIZGEN_OCR_UNIT_TIMEOUT",
		"ocr.min_confidence":                "QUIZGEN_OCR_MIN_CONFIDENCE",
		"extract.max_pdf_pages":             "QUIZGEN_EXTRACT_MAX_PDF_PAGES",
		"extract.min_text_layer":            "QUIZGEN_EXTRACT_MIN_TEXT_LAYER",
		"extract.max_concurrent":            "QUIZGEN_EXTRACT_MAX_CONCURRENT",
		"generator.primary.provider":        "QUIZGEN_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":         "QUIZGEN_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.default_model":   "QUIZGEN_GENERATOR_PRIMARY_DEFAULT_MODEL",
		"generator.primary.max_retries":     "QUIZGEN_GENERATOR_PRIMARY_MAX_RETRIES",
		"generator.primary.timeout_secs":    "QUIZGEN_GENERATOR_PRIMARY_TIMEOUT_SECS",
		"generator.secondary.provider":      "QUIZGEN_GENERATOR_SECONDARY_PROVIDER",
		"generator.secondary.api_key":       "QUIZGEN_GENERATOR_SECONDARY_API_KEY",
		"generator.secondary.default_model": "QUIZGEN_GENERATOR_SECONDARY_DEFAULT_MODEL",
		"generator.secondary.max_retries":   "QUIZGEN_GENERATOR_SECONDARY_MAX_RETRIES",
		"generator.secondary.timeout_secs":  "QUIZGEN_GENERATOR_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUIZGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUIZGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.OCR = OCRConfig{
		Language:      v.GetString("ocr.language"),
		Workers:       v.GetInt("ocr.workers"),
		UnitTimeout:   v.GetDuration("ocr.unit_timeout"),
		MinConfidence: v.GetFloat64("ocr.min_confidence"),
	}
	cfg.Extract = ExtractConfig{
		MaxPDFPages:   v.GetInt("extract.max_pdf_pages"),
		MinTextLayer:  v.GetInt("extract.min_text_layer"),
		MaxConcurrent: v.GetInt("extract.max_concurrent"),
	}
	cfg.Generator = GeneratorConfig{
		Primary: ProviderConfig{
			Provider:     v.GetString("generator.primary.provider"),
			APIKey:       v.GetString("generator.primary.api_key"),
			DefaultModel: v.GetString("generator.primary.default_model"),
			MaxRetries:   v.GetInt("generator.primary.max_retries"),
			TimeoutSecs:  v.GetInt("generator.primary.timeout_secs"),
		},
		Secondary: ProviderConfig{
			Provider:     v.GetString("generator.secondary.provider"),
			APIKey:       v.GetString("generator.secondary.api_key"),
			DefaultModel: v.GetString("generator.secondary.default_model"),
			MaxRetries:   v.GetInt("generator.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("generator.secondary.timeout_secs"),
		},
	}

	return cfg, nil
}
