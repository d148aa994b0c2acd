package provider

import (
	"fmt"
	"net/http"
	"time"

	"github.com/smsh-cli/smsh/internal/config"
)

// New maps the selected provider identifier to its implementation, binding
// the credential and model snapshot the worker will use. The transport
// deadline lives on the HTTP client; the dispatch layer itself imposes no
// timeout.
func New(cfg *config.Config, credential string) (Provider, error) {
	client := &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(credential, cfg.OpenAIModel, client), nil
	case config.ProviderClaude:
		return NewClaude(credential, cfg.ClaudeModel, client), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
