package credential

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/smsh-cli/smsh/internal/config"
)

// ErrNotFound means no source yielded a usable secret. It is an expected
// condition, reported cleanly to the user, never a fatal error.
var ErrNotFound = errors.New("no API key found")

// Env variable names checked per provider, in resolution order after the
// tool-wide override.
var envChain = map[string][2]string{
	config.ProviderOpenAI: {"SMSH_OPENAI_API_KEY", "OPENAI_API_KEY"},
	config.ProviderClaude: {"SMSH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
}

// overridable in tests
var (
	goos           = runtime.GOOS
	lookPath       = exec.LookPath
	keychainLookup = securityLookup
)

// Resolve returns the credential for the selected provider. Sources are
// checked in a fixed order, first non-empty value wins, no merging:
//
//  1. SMSH_API_KEY (tool-wide override)
//  2. provider-specific tool variable (SMSH_OPENAI_API_KEY / SMSH_ANTHROPIC_API_KEY)
//  3. provider-specific ecosystem variable (OPENAI_API_KEY / ANTHROPIC_API_KEY)
//  4. macOS keychain, when running on darwin and the security utility exists
//
// Nothing is cached across calls; keys may rotate between invocations.
func Resolve(cfg *config.Config, provider string) (string, error) {
	if key := os.Getenv("SMSH_API_KEY"); key != "" {
		return key, nil
	}

	chain, ok := envChain[provider]
	if !ok {
		return "", ErrNotFound
	}
	for _, name := range chain {
		if key := os.Getenv(name); key != "" {
			return key, nil
		}
	}

	if key := fromKeychain(cfg, provider); key != "" {
		return key, nil
	}
	return "", ErrNotFound
}

func fromKeychain(cfg *config.Config, provider string) string {
	if goos != "darwin" {
		return ""
	}
	if _, err := lookPath("security"); err != nil {
		return ""
	}

	var service string
	switch provider {
	case config.ProviderOpenAI:
		service = cfg.OpenAIKeychainService
	case config.ProviderClaude:
		service = cfg.ClaudeKeychainService
	default:
		return ""
	}
	return keychainLookup(service, cfg.KeychainAccount)
}

// securityLookup reads a generic password from the macOS keychain. Errors are
// deliberately folded into "not found": an absent entry and a denied prompt
// both mean this source has nothing to offer.
func securityLookup(service, account string) string {
	out, err := exec.Command("security", "find-generic-password", "-s", service, "-a", account, "-w").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
