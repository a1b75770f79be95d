package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Terms    TermsConfig    `yaml:"terms" mapstructure:"terms"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// TermsConfig selects the term dictionaries. An empty Path uses the
// embedded defaults.
type TermsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ClassifyConfig configures name classification.
type ClassifyConfig struct {
	FoldUnicode bool `yaml:"fold_unicode" mapstructure:"fold_unicode"`
}

// BatchConfig configures file classification.
type BatchConfig struct {
	Concurrency  int    `yaml:"concurrency" mapstructure:"concurrency"`
	NameColumn   string `yaml:"name_column" mapstructure:"name_column"`
	Format       string `yaml:"format" mapstructure:"format"`
	CacheTTLSecs int    `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
	Sheet        string `yaml:"sheet" mapstructure:"sheet"`
}

// BatchFormats lists the supported batch output formats.
var BatchFormats = []string{"jsonl", "json", "csv"}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("cleancorp")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLEANCORP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("terms.path", "")
	v.SetDefault("classify.fold_unicode", false)
	v.SetDefault("batch.concurrency", 8)
	v.SetDefault("batch.name_column", "name")
	v.SetDefault("batch.format", "jsonl")
	v.SetDefault("batch.cache_ttl_secs", 600)
	v.SetDefault("batch.sheet", "")

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

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	var errs []string
	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("batch.concurrency must be at least 1 (got %d)", c.Batch.Concurrency))
	}
	if !slices.Contains(BatchFormats, c.Batch.Format) {
		errs = append(errs, fmt.Sprintf("batch.format must be one of %s (got %q)", strings.Join(BatchFormats, ", "), c.Batch.Format))
	}
	if c.Batch.CacheTTLSecs < 0 {
		errs = append(errs, "batch.cache_ttl_secs must not be negative")
	}
	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
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
