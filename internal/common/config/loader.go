// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SCORING_REMOTE_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Merge environment-specific overrides if present
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the most plausible locations.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars expands ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the config file
// left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Scoring.Remote.APIKey == "" {
		if val := os.Getenv("SCORING_API_KEY"); val != "" {
			cfg.Scoring.Remote.APIKey = val
		}
	}
	if cfg.Scoring.Remote.BaseURL == "" {
		if val := os.Getenv("SCORING_REMOTE_BASE_URL"); val != "" {
			cfg.Scoring.Remote.BaseURL = val
		}
	}

	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if cfg.Tracking.AWS.TopicARN == "" {
		if val := os.Getenv("TRACKING_TOPIC_ARN"); val != "" {
			cfg.Tracking.AWS.TopicARN = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	// Database defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "freelancers"
	}

	// Remote scoring defaults
	if cfg.Scoring.Remote.Timeout == 0 {
		cfg.Scoring.Remote.Timeout = 3000
	}

	// Matching domain defaults
	if cfg.Scoring.Matching.MinScore == 0 {
		cfg.Scoring.Matching.MinScore = 0.5
	}
	if cfg.Scoring.Matching.MaxResults == 0 {
		cfg.Scoring.Matching.MaxResults = 10
	}
	if cfg.Scoring.Matching.CacheTTL == 0 {
		cfg.Scoring.Matching.CacheTTL = 600000
	}
	if cfg.Scoring.Matching.BudgetTolerance == 0 {
		cfg.Scoring.Matching.BudgetTolerance = 0.25
	}
	if cfg.Scoring.Matching.ContractCeiling == 0 {
		cfg.Scoring.Matching.ContractCeiling = 5
	}

	// Pricing defaults
	if cfg.Scoring.Pricing.RateFloor == 0 {
		cfg.Scoring.Pricing.RateFloor = 15
	}
	if cfg.Scoring.Pricing.RateCeiling == 0 {
		cfg.Scoring.Pricing.RateCeiling = 150
	}

	// Fraud defaults
	if cfg.Scoring.Fraud.MediumThreshold == 0 {
		cfg.Scoring.Fraud.MediumThreshold = 0.33
	}
	if cfg.Scoring.Fraud.HighThreshold == 0 {
		cfg.Scoring.Fraud.HighThreshold = 0.66
	}

	// Tracking defaults
	if cfg.Tracking.Sink == "" {
		cfg.Tracking.Sink = "postgres"
	}
	if cfg.Tracking.BufferSize == 0 {
		cfg.Tracking.BufferSize = 1024
	}

	// Registry default
	if cfg.Scoring.RegistryPath == "" {
		cfg.Scoring.RegistryPath = "configs/domains.json"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if cfg.Scoring.Matching.MinScore < 0 || cfg.Scoring.Matching.MinScore > 1 {
		return fmt.Errorf("scoring.matching.min_score must be in [0,1]")
	}
	if cfg.Scoring.Fraud.MediumThreshold >= cfg.Scoring.Fraud.HighThreshold {
		return fmt.Errorf("scoring.fraud.medium_threshold must be below high_threshold")
	}
	if cfg.Scoring.Pricing.RateFloor >= cfg.Scoring.Pricing.RateCeiling {
		return fmt.Errorf("scoring.pricing.rate_floor must be below rate_ceiling")
	}

	if cfg.Tracking.Enabled && cfg.Tracking.Sink == "sns" && cfg.Tracking.AWS.TopicARN == "" {
		return fmt.Errorf("tracking.aws.topic_arn is required for the sns sink")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
