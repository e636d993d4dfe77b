package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Detector providers
const (
	DetectorModelServer = "model-server"
	DetectorOpenAI      = "openai"
	DetectorGemini      = "gemini"
)

// Catalog sources
const (
	CatalogBuiltin  = "builtin"
	CatalogPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Upload      UploadConfig
	PostgreSQL  PostgreSQLConfig
	Redis       RedisConfig
	Logging     LoggingConfig
	Pricing     PricingConfig
	Detector    DetectorConfig
	OpenAI      OpenAIConfig
	Gemini      GeminiConfig
	ModelServer ModelServerConfig
	Pipeline    PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// UploadConfig controls where room photos are written and which files are accepted
type UploadConfig struct {
	Dir               string
	OutputDir         string
	MaxBytes          int64
	AllowedExtensions []string
}

// PostgreSQLConfig holds the optional price catalog database
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// RedisConfig holds the detection cache connection
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Enabled  bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// PricingConfig controls the price catalog and currency presentation
type PricingConfig struct {
	Source        string // builtin or postgres
	Currency      string
	Multiplier    float64 // applied to every amount after estimation
	DefaultTier   string
	MatchStrategy string // first or longest
}

// DetectorConfig selects the furniture detection backend
type DetectorConfig struct {
	Provider string
}

// OpenAIConfig holds OpenAI-compatible vision API configuration
type OpenAIConfig struct {
	APIKey      string
	APIBase     string
	VisionModel string
	Temperature float64
	MaxTokens   int
	Timeout     int
	Enabled     bool
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	Enabled bool
}

// ModelServerConfig points at the sidecar that hosts the detection, depth and diffusion models
type ModelServerConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// PipelineConfig holds defaults for the optional design steps
type PipelineConfig struct {
	EstimateDimensions bool
	GenerateDesigns    bool
	EditImage          bool
	CreateComparison   bool
	DetectTimeout      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Request-ID"),
		},
		Upload: UploadConfig{
			Dir:               getEnv("UPLOAD_DIR", "uploads"),
			OutputDir:         getEnv("OUTPUT_DIR", "outputs"),
			MaxBytes:          int64(getEnvAsInt("UPLOAD_MAX_BYTES", 16<<20)),
			AllowedExtensions: getEnvAsList("UPLOAD_ALLOWED_EXTENSIONS", []string{"png", "jpg", "jpeg"}),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "interioai"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("DETECT_CACHE_TTL", 24*time.Hour),
			Enabled:  getEnv("REDIS_ADDR", "") != "",
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Pricing: PricingConfig{
			Source:        getEnv("CATALOG_SOURCE", CatalogBuiltin),
			Currency:      getEnv("PRICING_CURRENCY", "INR"),
			Multiplier:    getEnvAsFloat("PRICING_CURRENCY_MULTIPLIER", 1.0),
			DefaultTier:   getEnv("PRICING_DEFAULT_TIER", "mid-range"),
			MatchStrategy: getEnv("PRICING_MATCH_STRATEGY", "first"),
		},
		Detector: DetectorConfig{
			Provider: getEnv("DETECTOR_PROVIDER", DetectorModelServer),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			APIBase:     getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1024),
			Timeout:     getEnvAsInt("OPENAI_TIMEOUT", 60),
			Enabled:     getEnv("OPENAI_API_KEY", "") != "",
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Enabled: getEnv("GEMINI_API_KEY", "") != "",
		},
		ModelServer: ModelServerConfig{
			BaseURL:    getEnv("MODEL_SERVER_URL", "http://localhost:8000"),
			Timeout:    getEnvAsDuration("MODEL_SERVER_TIMEOUT", 120*time.Second),
			RetryCount: getEnvAsInt("MODEL_SERVER_RETRIES", 2),
		},
		Pipeline: PipelineConfig{
			EstimateDimensions: getEnvAsBool("PIPELINE_ESTIMATE_DIMENSIONS", true),
			GenerateDesigns:    getEnvAsBool("PIPELINE_GENERATE_DESIGNS", true),
			EditImage:          getEnvAsBool("PIPELINE_EDIT_IMAGE", true),
			CreateComparison:   getEnvAsBool("PIPELINE_CREATE_COMPARISON", true),
			DetectTimeout:      getEnvAsDuration("PIPELINE_DETECT_TIMEOUT", 90*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be served
func (c *Config) Validate() error {
	switch c.Detector.Provider {
	case DetectorModelServer:
	case DetectorOpenAI:
		if !c.OpenAI.Enabled {
			return fmt.Errorf("detector provider %q requires OPENAI_API_KEY", c.Detector.Provider)
		}
	case DetectorGemini:
		if !c.Gemini.Enabled {
			return fmt.Errorf("detector provider %q requires GEMINI_API_KEY", c.Detector.Provider)
		}
	default:
		return fmt.Errorf("unknown detector provider %q", c.Detector.Provider)
	}

	switch c.Pricing.Source {
	case CatalogBuiltin, CatalogPostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Pricing.Source)
	}

	if c.Pricing.Multiplier <= 0 {
		return fmt.Errorf("currency multiplier must be positive, got %v", c.Pricing.Multiplier)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload size limit must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated value, dropping blanks and lowercasing entries
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
