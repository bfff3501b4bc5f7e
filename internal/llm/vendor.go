package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Vendor names accepted in Config.Provider.
const (
	Anthropic  = "anthropic"
	OpenAI     = "openai"
	Gemini     = "gemini"
	OpenRouter = "openrouter"
	Mock       = "mock"
)

// VendorConfig is the connection to one vendor.
type VendorConfig struct {
	APIKey  string
	Model   string // friendly name or a vendor model ID
	BaseURL string // empty means the vendor default
}

// Config selects a vendor and tunes calls to it.
type Config struct {
	Provider string
	Vendors  map[string]VendorConfig
	Retry    RetryConfig

	// Timeout bounds one tutor call, retries included.
	Timeout time.Duration
}

// RetryConfig tunes the backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

type vendor struct {
	name    string
	keyEnv  string
	model   string
	aliases map[string]string
	dial    func(ctx context.Context, vc VendorConfig) (backend, error)
}

// vendors is in discovery order: the first vendor whose standard API key
// variable is set wins.
var vendors = []vendor{
	{
		name:   Anthropic,
		keyEnv: "ANTHROPIC_API_KEY",
		model:  "claude-haiku",
		aliases: map[string]string{
			"claude-haiku":  "claude-haiku-4-5-20251001",
			"claude-sonnet": "claude-sonnet-4-5-20250929",
			"claude-opus":   "claude-opus-4-5-20251101",
		},
		dial: dialAnthropic,
	},
	{
		name:   OpenAI,
		keyEnv: "OPENAI_API_KEY",
		model:  "gpt-4o-mini",
		aliases: map[string]string{
			"gpt-mini": "gpt-4.1-mini",
			"gpt-nano": "gpt-4.1-nano",
		},
		dial: dialOpenAI,
	},
	{
		name:   Gemini,
		keyEnv: "GEMINI_API_KEY",
		model:  "gemini-flash",
		aliases: map[string]string{
			"gemini-flash":      "gemini-2.5-flash",
			"gemini-flash-lite": "gemini-2.5-flash-lite",
			"gemini-pro":        "gemini-2.5-pro",
		},
		dial: dialGemini,
	},
	{
		// OpenRouter model IDs carry the upstream vendor and are used as given.
		name:   OpenRouter,
		keyEnv: "OPENROUTER_API_KEY",
		model:  "google/gemini-2.5-flash",
		dial:   dialOpenRouter,
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// resolve maps a friendly model name to the vendor's model ID. Unknown
// names pass through so any model ID can be configured directly.
func (v vendor) resolve(model string) string {
	if model == "" {
		model = v.model
	}
	if id, ok := v.aliases[model]; ok {
		return id
	}
	return model
}

// VendorNames lists the supported vendors in discovery order.
func VendorNames() []string {
	names := make([]string, len(vendors))
	for i, v := range vendors {
		names[i] = v.name
	}
	return names
}

// DefaultConfig has every vendor on its default model and no vendor
// selected.
func DefaultConfig() Config {
	cfg := Config{
		Vendors: make(map[string]VendorConfig, len(vendors)),
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
	for _, v := range vendors {
		cfg.Vendors[v.name] = VendorConfig{Model: v.model}
	}
	return cfg
}

// Vendor returns the settings for name, falling back to the vendor's
// default model when none is set.
func (c Config) Vendor(name string) VendorConfig {
	vc := c.Vendors[name]
	if vc.Model == "" {
		if v, ok := lookupVendor(name); ok {
			vc.Model = v.model
		}
	}
	return vc
}

// DiscoverConfig selects the first vendor whose standard API key
// variable (ANTHROPIC_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, v := range vendors {
		if key := os.Getenv(v.keyEnv); key != "" {
			vc := cfg.Vendors[v.name]
			vc.APIKey = key
			cfg.Vendors[v.name] = vc
			cfg.Provider = v.name
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected vendor exists and has an API key.
func (c Config) Validate() error {
	if c.Provider == Mock {
		return nil
	}
	if _, ok := lookupVendor(c.Provider); !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Vendors[c.Provider].APIKey == "" {
		return fmt.Errorf("LINGUA_LLM_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
