package credential

import (
	"errors"
	"testing"

	"github.com/smsh-cli/smsh/internal/config"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SMSH_API_KEY",
		"SMSH_OPENAI_API_KEY", "OPENAI_API_KEY",
		"SMSH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func testConfig() *config.Config {
	return &config.Config{
		OpenAIKeychainService: config.DefaultOpenAIService,
		ClaudeKeychainService: config.DefaultClaudeService,
		KeychainAccount:       "tester",
	}
}

func TestResolveToolOverrideWinsOverEverything(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("SMSH_API_KEY", "sk-override")
	t.Setenv("SMSH_OPENAI_API_KEY", "sk-tool")
	t.Setenv("OPENAI_API_KEY", "sk-generic")

	key, err := Resolve(testConfig(), config.ProviderOpenAI)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if key != "sk-override" {
		t.Fatalf("expected tool-wide override, got %q", key)
	}
}

func TestResolveProviderOverrideBeforeGeneric(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("SMSH_OPENAI_API_KEY", "sk-tool")
	t.Setenv("OPENAI_API_KEY", "sk-generic")

	key, err := Resolve(testConfig(), config.ProviderOpenAI)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if key != "sk-tool" {
		t.Fatalf("expected provider override, got %q", key)
	}
}

func TestResolveGenericEnvFallback(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	key, err := Resolve(testConfig(), config.ProviderClaude)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if key != "sk-ant" {
		t.Fatalf("expected generic env key, got %q", key)
	}
}

func TestResolveIgnoresOtherProviderKeys(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	_, err := Resolve(testConfig(), config.ProviderClaude)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveNotFoundIsNotFatal(t *testing.T) {
	clearKeyEnv(t)

	key, err := Resolve(testConfig(), config.ProviderOpenAI)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}

func TestResolveFollowsToggledProvider(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := testConfig()
	selected := config.ProviderOpenAI

	key, err := Resolve(cfg, selected)
	if err != nil || key != "sk-openai" {
		t.Fatalf("openai: got %q, %v", key, err)
	}

	selected = config.Toggle(selected)
	key, err = Resolve(cfg, selected)
	if err != nil || key != "sk-ant" {
		t.Fatalf("after toggle: got %q, %v", key, err)
	}

	selected = config.Toggle(selected)
	key, err = Resolve(cfg, selected)
	if err != nil || key != "sk-openai" {
		t.Fatalf("after second toggle: got %q, %v", key, err)
	}
}

func TestResolveKeychainUsesConfiguredIdentifiers(t *testing.T) {
	clearKeyEnv(t)

	origGOOS, origLook, origLookup := goos, lookPath, keychainLookup
	defer func() { goos, lookPath, keychainLookup = origGOOS, origLook, origLookup }()

	goos = "darwin"
	lookPath = func(string) (string, error) { return "/usr/bin/security", nil }

	var gotService, gotAccount string
	keychainLookup = func(service, account string) string {
		gotService, gotAccount = service, account
		return "sk-keychain"
	}

	cfg := testConfig()
	cfg.ClaudeKeychainService = "custom.service"
	cfg.KeychainAccount = "alice"

	key, err := Resolve(cfg, config.ProviderClaude)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if key != "sk-keychain" {
		t.Fatalf("expected keychain key, got %q", key)
	}
	if gotService != "custom.service" || gotAccount != "alice" {
		t.Fatalf("unexpected lookup identifiers: %q %q", gotService, gotAccount)
	}
}

func TestResolveKeychainSkippedOffDarwin(t *testing.T) {
	clearKeyEnv(t)

	origGOOS, origLookup := goos, keychainLookup
	defer func() { goos, keychainLookup = origGOOS, origLookup }()

	goos = "linux"
	keychainLookup = func(string, string) string {
		t.Fatal("keychain must not be consulted off darwin")
		return ""
	}

	if _, err := Resolve(testConfig(), config.ProviderOpenAI); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveKeychainSkippedWithoutSecurityUtility(t *testing.T) {
	clearKeyEnv(t)

	origGOOS, origLook, origLookup := goos, lookPath, keychainLookup
	defer func() { goos, lookPath, keychainLookup = origGOOS, origLook, origLookup }()

	goos = "darwin"
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	keychainLookup = func(string, string) string {
		t.Fatal("keychain must not be consulted without the security utility")
		return ""
	}

	if _, err := Resolve(testConfig(), config.ProviderOpenAI); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
