package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Keav/smbfix/internal/planner"
)

// Scan walks the requested root and builds a plan. On full-capability
// profiles the repair collaborator runs over every visited entry (and the
// root itself) before names are evaluated, mirroring the walk order.
// The filesystem is never mutated beyond what the repairer does.
func (e *Engine) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	root, err := filepath.Abs(req.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve root: %w", err)
	}

	info, err := e.fs.Lstat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	scanner := planner.NewScanner(e.fs, e.profile)
	scanner.ExtraExcludes = e.cfg.ExtraExcludes

	if e.repairNeeded() {
		// The root gets repaired but never renamed.
		e.repairer.Repair(ctx, root, true)
		scanner.Visit = func(path string, isDir bool) {
			e.repairer.Repair(ctx, path, isDir)
		}
	}

	e.sink.Infof("🔍 Scanning for issues in: %s", root)
	plan, err := scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	for _, w := range plan.Warnings {
		e.sink.Warnf("%s", w)
	}

	return &ScanResult{
		RunID: uuid.NewString(),
		Plan:  plan,
	}, nil
}

// Apply executes a plan built by Scan. Per-operation failures are reported
// and do not abort the batch; the only returned error is context
// cancellation, in which case the partial results are still returned.
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	started := e.clock.Now()

	results, err := planner.NewApplier(e.fs).Apply(ctx, req.Plan)

	res := &ApplyResult{
		Results:  results,
		Duration: e.clock.Now().Sub(started),
	}

	for _, r := range results {
		switch r.Status {
		case planner.StatusApplied:
			if r.Op.Kind == planner.OpRename {
				e.sink.Infof("✅ Renamed: %s -> %s", r.Op.OriginalPath, r.FinalTarget)
			} else {
				e.sink.Infof("✅ Deleted: %s", r.Op.OriginalPath)
			}
		case planner.StatusSkipped:
			e.sink.Warnf("skipped %s: %v", r.Op.OriginalPath, r.Err)
		case planner.StatusFailed:
			e.sink.Errorf("failed %s: %v", r.Op.OriginalPath, r.Err)
		}
	}

	if err != nil {
		e.sink.Warnf("interrupted, %d of %d operations applied", res.Applied(), len(req.Plan.Operations))
		return res, err
	}
	return res, nil
}

// repairNeeded reports whether the repair pass should run.
func (e *Engine) repairNeeded() bool {
	return e.repairer != nil && e.profile.FullCapability() && !e.cfg.NoRepair
}
