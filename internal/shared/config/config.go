package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Auth          AuthConfig          `mapstructure:"auth"`
	TextProvider  TextProviderConfig  `mapstructure:"text_provider"`
	ImageProvider ImageProviderConfig `mapstructure:"image_provider"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Quota         QuotaConfig         `mapstructure:"quota"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	HTTPClient    HTTPClientConfig    `mapstructure:"http_client"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the key/value connection string used by gorm.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// URL returns the postgres:// form required by the migration driver.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration. An empty address disables Redis.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds session verification settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	PlanClaim string `mapstructure:"plan_claim"`
}

// TextProviderConfig selects and configures the text-generation backend.
type TextProviderConfig struct {
	Type             string        `mapstructure:"type"` // openai, vertex
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	ProjectID        string        `mapstructure:"project_id"`
	Location         string        `mapstructure:"location"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	CircuitTimeout   time.Duration `mapstructure:"circuit_timeout"`
}

// ImageProviderConfig selects and configures the text-to-image backend.
type ImageProviderConfig struct {
	Type             string        `mapstructure:"type"` // clipdrop, openai
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	Size             string        `mapstructure:"size"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	CircuitTimeout   time.Duration `mapstructure:"circuit_timeout"`
}

// StorageConfig holds object storage and CDN configuration.
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
	KeyPrefix       string `mapstructure:"key_prefix"`
}

// QuotaConfig holds free-tier settings.
type QuotaConfig struct {
	FreeLimit int `mapstructure:"free_limit"`
}

// RateLimitConfig holds per-user limits for generation routes.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// HTTPClientConfig tunes the shared outbound HTTP transport.
type HTTPClientConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/creatorkit")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("CREATORKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applySecretOverrides(&cfg)

	return &cfg, nil
}

// applySecretOverrides lets well-known vendor variables win over the file.
func applySecretOverrides(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"JWT_SECRET", &cfg.Auth.JWTSecret},
		{"DATABASE_PASSWORD", &cfg.Database.Password},
		{"REDIS_PASSWORD", &cfg.Redis.Password},
		{"OPENAI_API_KEY", &cfg.TextProvider.APIKey},
		{"CLIPDROP_API_KEY", &cfg.ImageProvider.APIKey},
		{"S3_ACCESS_KEY_ID", &cfg.Storage.AccessKeyID},
		{"S3_SECRET_ACCESS_KEY", &cfg.Storage.SecretAccessKey},
	}
	for _, o := range overrides {
		if val := os.Getenv(o.env); val != "" {
			*o.target = val
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", 11<<20)
	v.SetDefault("server.idempotency_ttl", 10*time.Minute)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "creatorkit")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.plan_claim", "plan")

	v.SetDefault("text_provider.type", "openai")
	v.SetDefault("text_provider.base_url", "https://generativelanguage.googleapis.com/v1beta/openai")
	v.SetDefault("text_provider.model", "gemini-2.0-flash")
	v.SetDefault("text_provider.location", "us-central1")
	v.SetDefault("text_provider.timeout", 90*time.Second)
	v.SetDefault("text_provider.failure_threshold", 5)
	v.SetDefault("text_provider.circuit_timeout", 30*time.Second)

	v.SetDefault("image_provider.type", "clipdrop")
	v.SetDefault("image_provider.base_url", "https://clipdrop-api.co")
	v.SetDefault("image_provider.model", "dall-e-3")
	v.SetDefault("image_provider.size", "1024x1024")
	v.SetDefault("image_provider.timeout", 90*time.Second)
	v.SetDefault("image_provider.failure_threshold", 5)
	v.SetDefault("image_provider.circuit_timeout", 30*time.Second)

	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.key_prefix", "creations")

	v.SetDefault("quota.free_limit", 15)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 30)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("http_client.timeout", 120*time.Second)
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 20)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.dial_timeout", 10*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
