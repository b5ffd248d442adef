package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer"`
	Trending TrendingConfig `mapstructure:"trending"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// ConnString returns the effective connection string for the configured driver.
// For sqlite the file path doubles as the DSN.
func (c *DatabaseConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return c.Path
}

type YouTubeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type AnalyzerConfig struct {
	Model              string `mapstructure:"model"`
	APIKey             string `mapstructure:"api_key"`
	BaseURL            string `mapstructure:"base_url"`
	TranscriptMaxChars int    `mapstructure:"transcript_max_chars"`
}

type TrendingConfig struct {
	Queries       []string `mapstructure:"queries"`
	QueriesPerRun int      `mapstructure:"queries_per_run"`
	LookbackDays  int      `mapstructure:"lookback_days"`
	MinViews      int64    `mapstructure:"min_views"`
	MinDuration   int      `mapstructure:"min_duration"`
	MaxResults    int      `mapstructure:"max_results"`
}

type StorageConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type AuthConfig struct {
	CronSecret string `mapstructure:"cron_secret"`
	UserHeader string `mapstructure:"user_header"`
	RoleHeader string `mapstructure:"role_header"`
}

// defaultTrendingQueries are the discovery searches rotated through on each run.
var defaultTrendingQueries = []string{
	"best AI tools 2025",
	"top AI productivity tools",
	"AI coding tools review",
	"AI video editing tools",
	"AI design tools comparison",
	"new AI tools this week",
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/toolhunt.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("analyzer.model", "gpt-4o-mini")
	v.SetDefault("analyzer.base_url", "https://api.openai.com/v1")
	v.SetDefault("analyzer.transcript_max_chars", 30000)
	v.SetDefault("trending.queries", defaultTrendingQueries)
	v.SetDefault("trending.queries_per_run", 2)
	v.SetDefault("trending.lookback_days", 14)
	v.SetDefault("trending.min_views", 1000)
	v.SetDefault("trending.min_duration", 60)
	v.SetDefault("trending.max_results", 10)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "toolhunt-thumbnails")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("auth.user_header", "X-User-ID")
	v.SetDefault("auth.role_header", "X-User-Role")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_URL")
	v.BindEnv("youtube.api_key", "YOUTUBE_API_KEY")
	v.BindEnv("analyzer.api_key", "OPENAI_API_KEY")
	v.BindEnv("analyzer.base_url", "OPENAI_BASE_URL")
	v.BindEnv("analyzer.model", "ANALYZER_MODEL")
	v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("storage.bucket", "S3_BUCKET")
	v.BindEnv("auth.cron_secret", "CRON_SECRET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
