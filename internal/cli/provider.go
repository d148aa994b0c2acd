package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smsh-cli/smsh/internal/config"
	"github.com/smsh-cli/smsh/internal/outcome"
)

var providerCmd = &cobra.Command{
	Use:   "provider [toggle]",
	Short: "Show or toggle the active provider",
	Long: `Show the active provider, or with "toggle" print the other one. The
selection itself lives in SMSH_LLM_PROVIDER; the widget re-exports the printed
value, so toggling twice lands back on the original provider.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE:      runProvider,
}

func runProvider(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err.Error())
		exitCode = outcome.ExitFailure
		return nil
	}

	selected := cfg.Provider
	if len(args) == 1 && args[0] == "toggle" {
		selected = config.Toggle(selected)
	}
	fmt.Println(selected)
	exitCode = outcome.ExitOK
	return nil
}
