//go:build !darwin

package repair

import (
	"context"

	"github.com/Keav/smbfix/internal/report"
)

// Fixer is a no-op on hosts without chflags/ownership repair support.
// Limited profiles get filename fixes only.
type Fixer struct{}

// NewFixer creates a no-op Fixer.
func NewFixer(session *Session, sink report.Sink) *Fixer {
	return &Fixer{}
}

// Repair does nothing on this platform.
func (f *Fixer) Repair(ctx context.Context, path string, isDir bool) {}
