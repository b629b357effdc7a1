package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// OriginConfig holds upstream sports-data provider configuration
type OriginConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	MediaBaseURL string        `mapstructure:"media_base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ImageTimeout time.Duration `mapstructure:"image_timeout"`
}

// StorageConfig holds blob storage configuration
type StorageConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Bucket     string        `mapstructure:"bucket"`
	ServiceKey string        `mapstructure:"service_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// SpeedCacheConfig holds the in-process speed layer configuration
type SpeedCacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// AssetsConfig holds asset materialization tuning
type AssetsConfig struct {
	MaxPendingAge     time.Duration `mapstructure:"max_pending_age"`
	ErrorCooldown     time.Duration `mapstructure:"error_cooldown"`
	PendingWait       time.Duration `mapstructure:"pending_wait"`
	RefreshTTL        time.Duration `mapstructure:"refresh_ttl"`
	BatchWidth        int           `mapstructure:"batch_width"`
	TransformWorkers  int           `mapstructure:"transform_workers"`
	TransformTimeout  time.Duration `mapstructure:"transform_timeout"`
	PlaceholderPrefix string        `mapstructure:"placeholder_prefix"`
}

// SweepConfig holds the background refresh sweep tuning
type SweepConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Origin     OriginConfig     `mapstructure:"origin"`
	Storage    StorageConfig    `mapstructure:"storage"`
	SpeedCache SpeedCacheConfig `mapstructure:"speed_cache"`
	Assets     AssetsConfig     `mapstructure:"assets"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Origin     OriginConfig   `mapstructure:"origin"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Assets     AssetsConfig   `mapstructure:"assets"`
	Sweep      SweepConfig    `mapstructure:"sweep"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	setOriginDefaults(v)
	setStorageDefaults(v)
	setAssetDefaults(v)
	v.SetDefault("speed_cache.size", 4096)
	v.SetDefault("speed_cache.ttl", "30s")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	setOriginDefaults(v)
	setStorageDefaults(v)
	setAssetDefaults(v)
	v.SetDefault("sweep.interval", "1h")
	v.SetDefault("sweep.batch_size", 100)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setOriginDefaults(v *viper.Viper) {
	v.SetDefault("origin.base_url", "https://v3.football.api-sports.io")
	v.SetDefault("origin.media_base_url", "https://media.api-sports.io/football")
	v.SetDefault("origin.timeout", "30s")
	v.SetDefault("origin.image_timeout", "20s")
}

func setStorageDefaults(v *viper.Viper) {
	v.SetDefault("storage.bucket", "sports-assets")
	v.SetDefault("storage.timeout", "30s")
}

func setAssetDefaults(v *viper.Viper) {
	v.SetDefault("assets.max_pending_age", "5m")
	v.SetDefault("assets.error_cooldown", "1h")
	v.SetDefault("assets.pending_wait", "300ms")
	v.SetDefault("assets.refresh_ttl", "720h") // 30 days
	v.SetDefault("assets.batch_width", 5)
	v.SetDefault("assets.transform_workers", 4)
	v.SetDefault("assets.transform_timeout", "30s")
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SPORTSCACHE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Origin
		"origin.base_url",
		"origin.media_base_url",
		"origin.api_key",
		"origin.timeout",
		"origin.image_timeout",
		// Storage
		"storage.endpoint",
		"storage.bucket",
		"storage.service_key",
		"storage.timeout",
		// Speed cache
		"speed_cache.size",
		"speed_cache.ttl",
		// Assets
		"assets.max_pending_age",
		"assets.error_cooldown",
		"assets.pending_wait",
		"assets.refresh_ttl",
		"assets.batch_width",
		"assets.transform_workers",
		"assets.transform_timeout",
		"assets.placeholder_prefix",
		// Sweep
		"sweep.interval",
		"sweep.batch_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
