// Package config loads assistant configuration the way the teacher's
// cmd/root.go does: a cascading .env search, an optional
// $HOME/.<app>.yaml file and environment variables, layered through
// viper. It binds no CLI flags; cmd/assistant applies flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully-resolved runtime configuration for the assistant.
type Config struct {
	DataDir string `mapstructure:"data_dir"`
	HomeDir string `mapstructure:"home_dir"`

	LLMProvider string `mapstructure:"llm_provider"`
	LLMModel    string `mapstructure:"llm_model"`
	Temperature float64 `mapstructure:"temperature"`

	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	DryRun bool `mapstructure:"dry_run"`

	SafetyValidationEnabled bool `mapstructure:"safety_validation_enabled"`
	VerificationEnabled     bool `mapstructure:"verification_enabled"`

	// Retry defaults: action path is bounded, code path defaults to a
	// larger bound rather than true infinity so tests stay deterministic.
	ActionMaxRetries int `mapstructure:"action_max_retries"`
	CodeMaxRetries   int `mapstructure:"code_max_retries"`
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`

	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`

	RedisAddr string `mapstructure:"redis_addr"`

	AllowedPaths []string `mapstructure:"allowed_paths"`
	DeniedPaths  []string `mapstructure:"denied_paths"`
}

// Default returns the baseline configuration, matching spec.md §9 open
// question (b): action path defaults to 3 retries, code path to 10.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:                 filepath.Join(home, ".spectral"),
		HomeDir:                 home,
		LLMProvider:             "anthropic",
		LLMModel:                "claude-sonnet-4-20250514",
		Temperature:             0.2,
		LogLevel:                "info",
		LogFormat:               "text",
		SafetyValidationEnabled: true,
		VerificationEnabled:     true,
		ActionMaxRetries:        3,
		CodeMaxRetries:          10,
		RetryBaseDelay:          time.Second,
		ChunkSize:               500,
		ChunkOverlap:            50,
	}
}

// Load reads .env (cascading through a few likely locations, same as
// the teacher), then layers an optional YAML config file and
// environment variables on top of Default() via viper.
func Load(cfgFile string) (Config, error) {
	for _, candidate := range []string{".env", "../.env", filepath.Join("assistant", ".env")} {
		if err := godotenv.Load(candidate); err == nil {
			break
		}
	}

	v := viper.New()
	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("home_dir", def.HomeDir)
	v.SetDefault("llm_provider", def.LLMProvider)
	v.SetDefault("llm_model", def.LLMModel)
	v.SetDefault("temperature", def.Temperature)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("safety_validation_enabled", def.SafetyValidationEnabled)
	v.SetDefault("verification_enabled", def.VerificationEnabled)
	v.SetDefault("action_max_retries", def.ActionMaxRetries)
	v.SetDefault("code_max_retries", def.CodeMaxRetries)
	v.SetDefault("retry_base_delay", def.RetryBaseDelay)
	v.SetDefault("chunk_size", def.ChunkSize)
	v.SetDefault("chunk_overlap", def.ChunkOverlap)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".windows-ai-assistant")
	}
	v.SetEnvPrefix("ASSISTANT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// SandboxRunsDir is where Sandbox Run Manager directories live, per
// spec.md §6's persistent layout.
func (c Config) SandboxRunsDir() string {
	return filepath.Join(c.HomeDir, ".spectral", "sandbox_runs")
}

// DesktopArchiveDir is where successful code generations are archived.
func (c Config) DesktopArchiveDir() string {
	return filepath.Join(c.HomeDir, "Desktop", "spectral")
}

// MemoryDir is where persistent memory storage lives.
func (c Config) MemoryDir() string {
	return filepath.Join(c.DataDir, "persistent_memory")
}

// ToolKnowledgeDir is where ingestible tool-knowledge documents live.
func (c Config) ToolKnowledgeDir() string {
	return filepath.Join(c.DataDir, "tool_knowledge")
}
