// Package engine provides the core orchestration for smbfix runs.
//
// The engine sits between the CLI and the lower layers. One run is strictly
// sequential: an optional repair pass piggybacks on the walk, the planner
// materializes a Plan, the CLI previews and confirms it, and the engine
// applies it. The engine never prompts; presentation and confirmation live
// in the CLI.
package engine

import (
	"context"

	"github.com/Keav/smbfix/internal/clock"
	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/fsops"
	"github.com/Keav/smbfix/internal/platform"
	"github.com/Keav/smbfix/internal/report"
)

// Repairer is the narrow interface to the permission-repair collaborator.
// Implementations must treat failures as warnings; Repair never fails.
type Repairer interface {
	Repair(ctx context.Context, path string, isDir bool)
}

// Engine orchestrates scanning and applying.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	profile  platform.Profile
	cfg      *config.Config
	repairer Repairer
	sink     report.Sink
	clock    clock.Clock
}

// New creates a new Engine with the given dependencies. repairer may be nil
// when the host profile does not support repair.
func New(
	fs fsops.FS,
	profile platform.Profile,
	cfg *config.Config,
	repairer Repairer,
	sink report.Sink,
	clk clock.Clock,
) *Engine {
	return &Engine{
		fs:       fs,
		profile:  profile,
		cfg:      cfg,
		repairer: repairer,
		sink:     sink,
		clock:    clk,
	}
}

// Profile returns the detected platform profile.
func (e *Engine) Profile() platform.Profile {
	return e.profile
}
