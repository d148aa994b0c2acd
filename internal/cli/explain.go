package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smsh-cli/smsh/internal/config"
	"github.com/smsh-cli/smsh/internal/logging"
	"github.com/smsh-cli/smsh/internal/outcome"
	"github.com/smsh-cli/smsh/internal/prompt"
)

var explainBuffer string

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain the command on the current input line",
	Long: `Explain the command on the current input line. The explanation is printed
as a '#'-prefixed comment so the widget can display it without ever inserting
it as a command.

Exit codes: 0 success, 1 any failure.`,
	Example: `  smsh explain --buffer "tar -xzf release.tgz -C /opt"`,
	RunE:    runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainBuffer, "buffer", "b", "", "Input line to explain")
}

func runExplain(cmd *cobra.Command, args []string) error {
	buffer := strings.TrimSpace(explainBuffer)
	// Short-circuit before touching credentials or the network.
	if buffer == "" {
		fmt.Println("Nothing to explain.")
		exitCode = outcome.ExitOK
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err.Error())
		exitCode = outcome.ExitFailure
		return nil
	}
	qlog := logging.New(cfg.LogFile)

	o := dispatch(cfg, prompt.Request{
		Mode:   prompt.ModeExplain,
		Buffer: buffer,
	})

	line, code := renderExplain(o)
	recordOutcome(qlog, "explain", buffer, o)
	fmt.Println(line)
	exitCode = code
	return nil
}

// renderExplain maps an outcome onto the explain stdout/exit contract: the
// explanation itself is sentinel-prefixed on success, and refusal is folded
// into the generic failure code.
func renderExplain(o outcome.Outcome) (string, int) {
	switch o.Status {
	case outcome.StatusGenerated:
		return outcome.Sentinel + " " + o.Text, o.ExplainExitCode()
	case outcome.StatusCancelled:
		return "Cancelled.", o.ExplainExitCode()
	default:
		return o.Text, o.ExplainExitCode()
	}
}
