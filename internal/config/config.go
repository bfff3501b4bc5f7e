// Package config loads lingua settings from .env, an optional YAML file
// and LINGUA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/lingua/internal/llm"
)

// ProviderNone disables the AI collaborator.
const ProviderNone = "none"

// Config holds application configuration.
type Config struct {
	Env      string `mapstructure:"env"`       // local, production
	DB       string `mapstructure:"db"`        // SQLite path or postgres:// URL; empty means the default path
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error

	// LLM is the resolved provider configuration. It is only usable when
	// LLMEnabled is true.
	LLM        llm.Config `mapstructure:"-"`
	LLMEnabled bool       `mapstructure:"-"`

	// LLMDisabledReason says why LLMEnabled is false.
	LLMDisabledReason string `mapstructure:"-"`
}

// Load reads configuration. configFile, when set, names the YAML file to
// read; otherwise lingua.yaml is looked up in the working directory and
// $XDG_CONFIG_HOME/lingua. A missing file is not an error.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lingua")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("LINGUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LLM = llmConfig(v)
	cfg.resolveLLM(v.GetString("llm.provider"))
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("db", "")
	v.SetDefault("log_level", "warn")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", def.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", def.Retry.MaxWait)

	// Every key needs a default for AutomaticEnv to see its variable.
	for _, name := range llm.VendorNames() {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", def.Vendors[name].Model)
		v.SetDefault("llm."+name+".base_url", "")
	}
}

func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Timeout = v.GetDuration("llm.timeout")
	cfg.Retry.MaxAttempts = v.GetInt("llm.retry.max_attempts")
	cfg.Retry.InitialWait = v.GetDuration("llm.retry.initial_wait")
	cfg.Retry.MaxWait = v.GetDuration("llm.retry.max_wait")

	for _, name := range llm.VendorNames() {
		cfg.Vendors[name] = llm.VendorConfig{
			APIKey:  v.GetString("llm." + name + ".api_key"),
			Model:   v.GetString("llm." + name + ".model"),
			BaseURL: v.GetString("llm." + name + ".base_url"),
		}
	}
	return cfg
}

// resolveLLM picks the provider. An explicit provider wins; otherwise the
// standard vendor API key variables are probed.
func (c *Config) resolveLLM(provider string) {
	switch provider {
	case ProviderNone:
		c.LLMDisabledReason = "AI disabled by configuration"
		return
	case "":
		found, ok := llm.DiscoverConfig()
		if !ok {
			c.LLMDisabledReason = "no LLM provider configured"
			return
		}
		c.LLM.Provider = found.Provider
		vc := c.LLM.Vendors[found.Provider]
		vc.APIKey = firstNonEmpty(vc.APIKey, found.Vendors[found.Provider].APIKey)
		c.LLM.Vendors[found.Provider] = vc
	default:
		c.LLM.Provider = provider
	}

	if err := c.LLM.Validate(); err != nil {
		c.LLMDisabledReason = err.Error()
		return
	}
	c.LLMEnabled = true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lingua"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lingua"), nil
}
