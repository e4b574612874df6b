// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Tracking TrackingConfig `mapstructure:"tracking"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	Index      string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Scoring Configuration ---

// ScoringConfig holds settings for the scoring engine and its domains.
type ScoringConfig struct {
	RegistryPath string         `mapstructure:"registry_path"`
	Remote       RemoteConfig   `mapstructure:"remote"`
	Matching     MatchingConfig `mapstructure:"matching"`
	Pricing      PricingConfig  `mapstructure:"pricing"`
	Fraud        FraudConfig    `mapstructure:"fraud"`
}

// RemoteConfig holds settings for the external scoring service.
type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type MatchingConfig struct {
	MinScore        float64 `mapstructure:"min_score"`
	MaxResults      int     `mapstructure:"max_results"`
	CacheTTL        int     `mapstructure:"cache_ttl"`        // milliseconds
	BudgetTolerance float64 `mapstructure:"budget_tolerance"` // fraction outside the range scored linearly to 0
	ContractCeiling int     `mapstructure:"contract_ceiling"` // active-contract load at which availability hits 0
}

type PricingConfig struct {
	RateFloor   float64 `mapstructure:"rate_floor"`
	RateCeiling float64 `mapstructure:"rate_ceiling"`
}

type FraudConfig struct {
	MediumThreshold float64 `mapstructure:"medium_threshold"`
	HighThreshold   float64 `mapstructure:"high_threshold"`
}

// --- Tracking Configuration ---

// TrackingConfig holds settings for the exposure/click tracking sink.
type TrackingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Sink       string `mapstructure:"sink"` // "sns" or "postgres"
	BufferSize int    `mapstructure:"buffer_size"`
	AWS        struct {
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
