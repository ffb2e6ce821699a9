package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Reference data sources.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig selects where partner and company records come from.
type DataConfig struct {
	Source        string `yaml:"source" mapstructure:"source"`
	PartnersPath  string `yaml:"partners_path" mapstructure:"partners_path"`
	CompaniesPath string `yaml:"companies_path" mapstructure:"companies_path"`
	PartnersURL   string `yaml:"partners_url" mapstructure:"partners_url"`
	CompaniesURL  string `yaml:"companies_url" mapstructure:"companies_url"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// StoreConfig configures the SQL reference store.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// MatchConfig configures recommendations.
type MatchConfig struct {
	TopN int `yaml:"top_n" mapstructure:"top_n"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DEALCRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.source", SourceFile)
	v.SetDefault("data.partners_path", "data/partners.json")
	v.SetDefault("data.companies_path", "data/preloaded_companies.json")
	v.SetDefault("data.partners_url", "")
	v.SetDefault("data.companies_url", "")
	v.SetDefault("data.timeout_secs", 10)
	v.SetDefault("data.max_retries", 3)
	v.SetDefault("store.driver", SourceSQLite)
	v.SetDefault("store.database_url", "dealcraft.db")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("store.min_conns", 1)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("match.top_n", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	switch c.Data.Source {
	case SourceFile:
		if c.Data.PartnersPath == "" || c.Data.CompaniesPath == "" {
			errs = append(errs, "data.partners_path and data.companies_path are required for the file source")
		}
	case SourceHTTP:
		if c.Data.PartnersURL == "" || c.Data.CompaniesURL == "" {
			errs = append(errs, "data.partners_url and data.companies_url are required for the http source")
		}
	case SourceSQLite, SourcePostgres:
	default:
		errs = append(errs, "data.source must be one of file, http, sqlite, postgres")
	}

	switch c.Store.Driver {
	case SourceSQLite, SourcePostgres:
	default:
		errs = append(errs, "store.driver must be sqlite or postgres")
	}

	if (c.Data.Source == SourcePostgres || c.Store.Driver == SourcePostgres) && !isPostgresDSN(c.Store.DatabaseURL) {
		errs = append(errs, "store.database_url must be a postgres:// or postgresql:// URL (or key=value DSN) for postgres")
	}

	if c.Match.TopN < 1 {
		errs = append(errs, "match.top_n must be >= 1")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 0 and 65535")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server.rate_limit must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// isPostgresDSN reports whether dsn looks like a pgx connection string.
func isPostgresDSN(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	return strings.Contains(dsn, "=")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
