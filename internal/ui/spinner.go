package ui

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smsh-cli/smsh/internal/provider"
)

// ErrCancelled is returned when the user interrupts the dispatch before it
// completes. It carries no payload.
var ErrCancelled = errors.New("cancelled")

// Task is a deferred dispatch call. It must honor ctx cancellation.
type Task func(ctx context.Context) (*provider.Reply, error)

// Run executes the task on a worker while a spinner keeps the terminal
// responsive, and joins its result exactly once. ctrl+c or esc cancels the
// context and returns ErrCancelled without waiting for the worker; the
// in-flight HTTP request is aborted client-side but its server-side effects
// are not rolled back. Without a terminal the task runs synchronously with no
// feedback, same contract.
func Run(ctx context.Context, label string, task Task) (*provider.Reply, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		return task(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newSpinModel(ctx, cancel, label, task)
	// Stdout carries the payload contract, so the spinner renders on stderr.
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm := final.(spinModel)
	if fm.cancelled {
		return nil, ErrCancelled
	}
	return fm.reply, fm.err
}

// doneMsg carries the worker's terminal value back to the foreground loop.
type doneMsg struct {
	reply *provider.Reply
	err   error
}

// spinModel is the foreground loop: it redraws the spinner on each tick and
// waits for either the worker's doneMsg or a cancellation key.
type spinModel struct {
	spinner spinner.Model
	label   string
	task    Task

	ctx    context.Context
	cancel context.CancelFunc

	reply     *provider.Reply
	err       error
	cancelled bool
	done      bool
}

func newSpinModel(ctx context.Context, cancel context.CancelFunc, label string, task Task) spinModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return spinModel{
		spinner: s,
		label:   label,
		task:    task,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Init spawns the single worker and starts the tick.
func (m spinModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dispatch())
}

func (m spinModel) dispatch() tea.Cmd {
	return func() tea.Msg {
		reply, err := m.task(m.ctx)
		return doneMsg{reply: reply, err: err}
	}
}

// Update handles messages.
func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		if m.cancelled {
			// Cancellation already won the race; the late result is dropped.
			return m, tea.Quit
		}
		m.reply = msg.reply
		m.err = msg.err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress line.
func (m spinModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return m.spinner.View() + m.label
}
