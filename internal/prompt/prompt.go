package prompt

import (
	"fmt"
	"runtime"
	"strings"
)

// Mode selects the framing sent to the model.
type Mode int

const (
	// ModeComplete asks for a ready-to-run zsh command.
	ModeComplete Mode = iota
	// ModeExplain asks for a one-line explanation of the input line.
	ModeExplain
)

// Request is one invocation's input. Query is required for ModeComplete and
// ignored for ModeExplain; Buffer is required for ModeExplain and optional
// for ModeComplete.
type Request struct {
	Mode   Mode
	Query  string
	Buffer string
}

// Build returns the system framing and the user prompt for a request.
func Build(req Request) (system, user string) {
	switch req.Mode {
	case ModeExplain:
		return explainSystem(), req.Buffer
	default:
		return completeSystem(), completeUser(req)
	}
}

// completeSystem frames command generation: the target dialect is zsh so the
// generated syntax is valid for the hosting widget, and output is constrained
// to ASCII so quotes survive insertion into the buffer.
func completeSystem() string {
	return strings.TrimSpace(fmt.Sprintf(
		"Generate a zsh command. Use only ASCII characters (straight quotes, no curly quotes). "+
			"If the request is unclear or not a valid shell task, set error=true and put an explanation in result. %s",
		osContext()))
}

func explainSystem() string {
	return strings.TrimSpace(fmt.Sprintf(
		"Explain zsh commands. Return a short, single-line explanation in the result field. %s",
		osContext()))
}

// completeUser asks to alter the current line when one is present, otherwise
// the query stands alone.
func completeUser(req Request) string {
	if req.Buffer != "" {
		return fmt.Sprintf("Alter zsh command `%s` to comply with query `%s`", req.Buffer, req.Query)
	}
	return req.Query
}

func osContext() string {
	switch runtime.GOOS {
	case "darwin":
		return "The target system is macOS."
	case "linux":
		return "The target system is Linux."
	default:
		return ""
	}
}
