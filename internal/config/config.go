package config

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider identifiers. The set is closed: each variant has its own request
// shape, response shape, and credential namespace.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Config holds one invocation's settings. The values are snapshotted at load
// time and never mutated afterwards; the dispatch worker only ever sees this
// immutable copy.
type Config struct {
	// Provider selection
	Provider string `mapstructure:"provider"`

	// Models
	OpenAIModel string `mapstructure:"openai_model"`
	ClaudeModel string `mapstructure:"claude_model"`

	// Keychain lookup identifiers (macOS only)
	OpenAIKeychainService string `mapstructure:"openai_keychain_service"`
	ClaudeKeychainService string `mapstructure:"claude_keychain_service"`
	KeychainAccount       string `mapstructure:"keychain_account"`

	// General settings
	LogFile string `mapstructure:"log_file"`
	Timeout int    `mapstructure:"timeout"`
}

// Defaults recognized when the environment leaves a value unset.
const (
	DefaultProvider       = ProviderOpenAI
	DefaultOpenAIModel    = "gpt-4o"
	DefaultClaudeModel    = "claude-sonnet-4-5-20250929"
	DefaultOpenAIService  = "smartshell.openai"
	DefaultClaudeService  = "smartshell.anthropic"
	DefaultTimeoutSeconds = 30
)

// Load reads configuration from the environment. Every variable is optional;
// absence is never an error. An optional .env in the working directory or in
// ~/.smsh is folded into the environment first so interactive shells and the
// widget see the same settings.
func Load() (*Config, error) {
	_ = godotenv.Load()
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".smsh", ".env"))
	}

	v := viper.New()
	v.AutomaticEnv()

	v.BindEnv("provider", "SMSH_LLM_PROVIDER")
	v.BindEnv("openai_model", "SMSH_OPENAI_MODEL")
	v.BindEnv("claude_model", "SMSH_ANTHROPIC_MODEL")
	v.BindEnv("openai_keychain_service", "SMSH_OPENAI_KEYCHAIN_SERVICE")
	v.BindEnv("claude_keychain_service", "SMSH_ANTHROPIC_KEYCHAIN_SERVICE")
	v.BindEnv("keychain_account", "SMSH_KEYCHAIN_ACCOUNT")
	v.BindEnv("log_file", "SMSH_LOG")
	v.BindEnv("timeout", "SMSH_TIMEOUT")

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("openai_model", DefaultOpenAIModel)
	v.SetDefault("claude_model", DefaultClaudeModel)
	v.SetDefault("openai_keychain_service", DefaultOpenAIService)
	v.SetDefault("claude_keychain_service", DefaultClaudeService)
	v.SetDefault("keychain_account", currentUser())
	v.SetDefault("timeout", DefaultTimeoutSeconds)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if !KnownProvider(cfg.Provider) {
		cfg.Provider = DefaultProvider
	}
	return cfg, nil
}

// KnownProvider reports whether id names a supported provider.
func KnownProvider(id string) bool {
	return id == ProviderOpenAI || id == ProviderClaude
}

// Toggle returns the other provider of the pair. Applying it twice yields the
// original selection.
func Toggle(provider string) string {
	if provider == ProviderOpenAI {
		return ProviderClaude
	}
	return ProviderOpenAI
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
