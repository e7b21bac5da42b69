// Package report provides the reporting sink the engine and planner write
// human-readable progress and warning lines to. The sink is informational
// only and never used for control flow.
package report

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sink accepts human-readable progress and warning lines.
type Sink interface {
	// Infof reports a progress line.
	Infof(format string, args ...any)

	// Warnf reports a non-fatal warning line.
	Warnf(format string, args ...any)

	// Errorf reports a per-operation failure line.
	Errorf(format string, args ...any)
}

var (
	warnColor = color.New(color.FgYellow, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
)

// Console is a Sink writing to stdout/stderr with fatih/color styling.
// fatih/color handles TTY detection automatically.
type Console struct{}

// NewConsole creates a console sink.
func NewConsole() *Console {
	return &Console{}
}

// Infof reports a progress line to stdout.
func (c *Console) Infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Warnf reports a warning line to stdout.
func (c *Console) Warnf(format string, args ...any) {
	_, _ = warnColor.Printf("⚠ "+format+"\n", args...)
}

// Errorf reports a failure line to stderr.
func (c *Console) Errorf(format string, args ...any) {
	_, _ = errColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Discard is a Sink that drops everything; used in tests.
type Discard struct{}

// Infof drops the line.
func (Discard) Infof(string, ...any) {}

// Warnf drops the line.
func (Discard) Warnf(string, ...any) {}

// Errorf drops the line.
func (Discard) Errorf(string, ...any) {}

// Memory is a Sink that records lines for test assertions.
type Memory struct {
	Infos  []string
	Warns  []string
	Errors []string
}

// Infof records a progress line.
func (m *Memory) Infof(format string, args ...any) {
	m.Infos = append(m.Infos, fmt.Sprintf(format, args...))
}

// Warnf records a warning line.
func (m *Memory) Warnf(format string, args ...any) {
	m.Warns = append(m.Warns, fmt.Sprintf(format, args...))
}

// Errorf records a failure line.
func (m *Memory) Errorf(format string, args ...any) {
	m.Errors = append(m.Errors, fmt.Sprintf(format, args...))
}
