package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/smsh-cli/smsh/internal/config"
	"github.com/smsh-cli/smsh/internal/logging"
	"github.com/smsh-cli/smsh/internal/outcome"
	"github.com/smsh-cli/smsh/internal/prompt"
	"github.com/smsh-cli/smsh/internal/safety"
	"github.com/smsh-cli/smsh/internal/ui"
)

var (
	completeQuery  string
	completeBuffer string
	completeCopy   bool
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Generate a zsh command from a natural language query",
	Long: `Generate a zsh command from a natural language query. When --buffer is
given, the current input line is altered to match the query instead of
generating from scratch.

Exit codes: 0 the payload is an insertable command, 2 the model refused (the
payload is a '#'-prefixed message), 1 any other failure.`,
	Example: `  smsh complete --query "list files over 1GB"
  smsh complete --buffer "journalctl -u nginx" --query "only errors"`,
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().StringVarP(&completeQuery, "query", "q", "", "Natural language query")
	completeCmd.Flags().StringVarP(&completeBuffer, "buffer", "b", "", "Current input line to alter")
	completeCmd.Flags().BoolVar(&completeCopy, "copy", false, "Also copy the generated command to the clipboard")
}

func runComplete(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(completeQuery)
	if query == "" {
		query = promptForQuery()
	}
	// Short-circuit before touching credentials or the network.
	if query == "" {
		fmt.Println("Completion aborted (empty input).")
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
		Mode:   prompt.ModeComplete,
		Query:  query,
		Buffer: completeBuffer,
	})

	line, code := renderComplete(o)
	recordOutcome(qlog, "complete", query, o)
	fmt.Println(line)
	exitCode = code

	if o.Status == outcome.StatusGenerated {
		warnIfRisky(o.Text)
		if completeCopy {
			if err := clipboard.WriteAll(o.Text); err != nil {
				ui.PrintWarning(fmt.Sprintf("clipboard copy failed: %v", err))
			}
		}
	}
	return nil
}

// renderComplete maps an outcome onto the completion stdout/exit contract.
func renderComplete(o outcome.Outcome) (string, int) {
	if o.Status == outcome.StatusCancelled {
		return "Cancelled.", o.ExitCode()
	}
	return o.Text, o.ExitCode()
}

// promptForQuery reads one query line interactively. Only attempted on a
// terminal; the widget always passes --query.
func promptForQuery() string {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return ""
	}
	fmt.Fprint(os.Stderr, "> Query: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// warnIfRisky prints advisory warnings for destructive-looking commands on
// stderr. The payload and exit code are never affected.
func warnIfRisky(command string) {
	a := safety.Analyze(command)
	for _, w := range a.Warnings {
		ui.PrintWarning(w)
	}
}

// recordOutcome appends the invocation to the query log, annotating failure
// and refusal entries the way the log consumers expect.
func recordOutcome(qlog *logging.QueryLog, op, query string, o outcome.Outcome) {
	switch o.Status {
	case outcome.StatusGenerated:
		qlog.Record(op, query, o.Text)
	case outcome.StatusRefused:
		qlog.Record(op, query, "REFUSED: "+o.Text)
	case outcome.StatusFailed:
		qlog.Record(op, query, "ERROR: "+o.Text)
	case outcome.StatusCancelled:
		qlog.Record(op, query, "CANCELLED")
	}
}
