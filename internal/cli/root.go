package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smsh-cli/smsh/internal/config"
	"github.com/smsh-cli/smsh/internal/credential"
	"github.com/smsh-cli/smsh/internal/outcome"
	"github.com/smsh-cli/smsh/internal/prompt"
	"github.com/smsh-cli/smsh/internal/provider"
	"github.com/smsh-cli/smsh/internal/ui"
)

// exitCode is set by the subcommand handlers and returned by Execute. The
// refusal code cannot travel through cobra's error return, so the handlers
// record it here and return nil.
var exitCode = outcome.ExitOK

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "smsh",
	Short: "LLM-powered zsh command helper",
	Long: `smsh turns a natural language query into a ready-to-use zsh command,
or explains the command currently on the input line. It is meant to be driven
by a zsh line-editor widget and prints exactly one payload on stdout.

Providers: openai (default) and claude, selected via SMSH_LLM_PROVIDER.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(providerCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		return outcome.ExitFailure
	}
	return exitCode
}

// dispatch resolves the credential, selects the provider, and runs one
// generation attempt behind the spinner. Every path ends in exactly one of
// the four outcome variants.
func dispatch(cfg *config.Config, req prompt.Request) outcome.Outcome {
	cred, err := credential.Resolve(cfg, cfg.Provider)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return outcome.Failed(fmt.Sprintf("%s API key not set", providerLabel(cfg.Provider)))
		}
		return outcome.Failed(err.Error())
	}

	p, err := provider.New(cfg, cred)
	if err != nil {
		return outcome.Failed(err.Error())
	}

	system, user := prompt.Build(req)
	reply, err := ui.Run(context.Background(), "thinking...", func(ctx context.Context) (*provider.Reply, error) {
		return p.Generate(ctx, system, user)
	})
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			return outcome.Cancelled()
		}
		return outcome.Failed(err.Error())
	}

	if reply.Refused {
		return outcome.Refused(reply.Text)
	}
	return outcome.Generated(reply.Text)
}

func providerLabel(id string) string {
	switch id {
	case config.ProviderClaude:
		return "Anthropic"
	default:
		return "OpenAI"
	}
}
