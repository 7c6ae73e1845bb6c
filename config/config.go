package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the toolkit.
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Judge    JudgeConfig    `mapstructure:"judge"`
	Generate GenerateConfig `mapstructure:"generate"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Remote   RemoteConfig   `mapstructure:"remote"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// DatasetConfig names the files the pipeline reads and writes. All of them can
// be overridden per invocation with command flags.
type DatasetConfig struct {
	Path       string `mapstructure:"path"`
	ReportPath string `mapstructure:"report_path"`
	FixLogPath string `mapstructure:"fix_log_path"`
}

func (d DatasetConfig) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("dataset.path is required")
	}
	return nil
}

// LLMConfig contains LLM provider configurations.
type LLMConfig struct {
	Providers map[string]LLMProvider `mapstructure:"providers"`
	Routing   LLMRoutingConfig       `mapstructure:"routing"`
}

// LLMProvider represents a single LLM provider configuration.
type LLMProvider struct {
	Type        string        `mapstructure:"type"` // openai, gemini
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	MaxRetries  int           `mapstructure:"max_retries"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// LLMRoutingConfig picks which provider entry serves each task.
type LLMRoutingConfig struct {
	Generation string `mapstructure:"generation"`
	Judging    string `mapstructure:"judging"`
	Fallback   string `mapstructure:"fallback"`
}

// Resolve returns the provider entry for a routing slot, falling back to the
// configured fallback and then to the sole entry when only one exists.
func (l LLMConfig) Resolve(slot string) (LLMProvider, error) {
	name := ""
	switch slot {
	case "generation":
		name = l.Routing.Generation
	case "judging":
		name = l.Routing.Judging
	}
	if name == "" {
		name = l.Routing.Fallback
	}
	if name == "" && len(l.Providers) == 1 {
		for only := range l.Providers {
			name = only
		}
	}
	p, ok := l.Providers[name]
	if !ok {
		return LLMProvider{}, fmt.Errorf("llm: no provider configured for %q (routing/fallback unset)", slot)
	}
	return p, nil
}

// JudgeConfig tunes the external verification pass.
type JudgeConfig struct {
	BatchDelay time.Duration `mapstructure:"batch_delay"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryWait  time.Duration `mapstructure:"retry_wait"`
	Cache      CacheConfig   `mapstructure:"cache"`
}

// CacheConfig enables the Redis verdict cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (c CacheConfig) Validate() error {
	if c.Enabled && strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("judge.cache.addr required when cache is enabled")
	}
	return nil
}

// GenerateConfig tunes bulk content generation.
type GenerateConfig struct {
	QuestionsPerSet int           `mapstructure:"questions_per_set"`
	Delay           time.Duration `mapstructure:"delay"`
	MaxRetries      int           `mapstructure:"max_retries"`
	RetryWait       time.Duration `mapstructure:"retry_wait"`
}

// StorageConfig contains the hosted backend connection settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig contains Postgres connection settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RemoteConfig describes the generation VPS.
type RemoteConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	KeyFile         string        `mapstructure:"key_file"`
	InsecureHostKey bool          `mapstructure:"insecure_host_key"`
	LogPath         string        `mapstructure:"log_path"`
	CommandTimeout  time.Duration `mapstructure:"command_timeout"`
}

// LoadConfig loads config from a file (JSON), with CURRIKIT_* environment
// variables overriding any key.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("dataset.path", "data/curriculum.json")
	viper.SetDefault("dataset.report_path", "audit-report.json")
	viper.SetDefault("dataset.fix_log_path", "fix_log.txt")
	viper.SetDefault("judge.batch_delay", "7s")
	viper.SetDefault("judge.max_retries", 3)
	viper.SetDefault("judge.retry_wait", "60s")
	viper.SetDefault("generate.questions_per_set", 10)
	viper.SetDefault("generate.delay", "4s")
	viper.SetDefault("generate.max_retries", 5)
	viper.SetDefault("generate.retry_wait", "60s")
	viper.SetDefault("remote.port", 22)
	viper.SetDefault("remote.command_timeout", "15m")
	viper.SetDefault("remote.log_path", "~/math-curriculum-gen/generation.log")

	if path == "" {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("CURRIKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Dataset.Validate(); err != nil {
		return nil, err
	}
	if err := config.Judge.Cache.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
