package outcome

import "strings"

// Sentinel marks output as informational text rather than an executable
// command. Refusals and explanations are prefixed with it so the shell widget
// never inserts them as commands.
const Sentinel = "#"

// Process exit codes forming the subprocess contract with the shell widget.
const (
	ExitOK      = 0 // payload on stdout is safe to insert
	ExitFailure = 1 // credential, transport, or response failure
	ExitRefusal = 2 // model declined; payload is a sentinel-prefixed message
)

// Status distinguishes the terminal states of an invocation.
type Status int

const (
	StatusGenerated Status = iota // command or explanation ready for use
	StatusRefused                 // model declined; text is human-readable
	StatusFailed                  // credential/transport/provider error
	StatusCancelled               // user interrupted before completion
)

// Outcome pairs a status with its text payload. Exactly one status holds per
// completed invocation; Cancelled carries no payload.
type Outcome struct {
	Status Status
	Text   string
}

// Generated builds a success outcome. A payload that already starts with the
// sentinel is informational text, not a command, so it is reclassified as a
// refusal regardless of how the backend labeled it.
func Generated(text string) Outcome {
	if strings.HasPrefix(strings.TrimSpace(text), Sentinel) {
		return Outcome{Status: StatusRefused, Text: strings.TrimSpace(text)}
	}
	return Outcome{Status: StatusGenerated, Text: text}
}

// Refused builds a refusal outcome, ensuring the message carries the
// sentinel. A backend may decline without giving a reason; the payload must
// still be human-readable, so an empty message gets a generic one.
func Refused(message string) Outcome {
	message = strings.TrimSpace(message)
	if message == "" || message == Sentinel {
		message = "the model declined the request"
	}
	if !strings.HasPrefix(message, Sentinel) {
		message = Sentinel + " " + message
	}
	return Outcome{Status: StatusRefused, Text: message}
}

// Failed builds a failure outcome from a human-readable cause.
func Failed(message string) Outcome {
	return Outcome{Status: StatusFailed, Text: message}
}

// Cancelled builds the user-interruption outcome.
func Cancelled() Outcome {
	return Outcome{Status: StatusCancelled}
}

// ExitCode maps the outcome onto the completion exit-code contract, where
// refusal has its own reserved code.
func (o Outcome) ExitCode() int {
	switch o.Status {
	case StatusGenerated:
		return ExitOK
	case StatusRefused:
		return ExitRefusal
	default:
		return ExitFailure
	}
}

// ExplainExitCode maps the outcome onto the explain contract, which folds
// refusal into the generic failure code.
func (o Outcome) ExplainExitCode() int {
	if o.Status == StatusGenerated {
		return ExitOK
	}
	return ExitFailure
}
