package planner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Keav/smbfix/internal/fsops"
	"github.com/Keav/smbfix/internal/sanitize"
)

// Status constants for one applied operation.
const (
	StatusApplied = "applied"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// OpResult records the outcome of applying one operation. The embedded
// Operation carries the paths as they were at apply time, after any
// ancestor-rename propagation rewrote them.
type OpResult struct {
	// Op is the operation as it was applied
	Op Operation

	// Status is one of StatusApplied, StatusSkipped, StatusFailed
	Status string

	// FinalTarget is the target actually used (renames only); it differs
	// from Op.TargetPath when apply-time re-resolution kicked in
	FinalTarget string

	// Err explains a skip or failure
	Err error
}

// Applier executes a Plan in order. Failures are per-operation and never
// abort the batch; the caller inspects the returned results.
type Applier struct {
	fs fsops.FS
}

// NewApplier creates an Applier using fs for all mutations.
func NewApplier(fs fsops.FS) *Applier {
	return &Applier{fs: fs}
}

// Apply executes every operation in plan order. Before each operation the
// original path is verified to still exist; a vanished source is skipped
// and reported. After a successful directory rename, every still-pending
// operation under the old path is rewritten to the new path before the next
// operation runs.
//
// Cancellation stops promptly between operations: already-applied
// operations stay applied and the partial results are returned alongside
// the context error.
func (a *Applier) Apply(ctx context.Context, plan *Plan) ([]OpResult, error) {
	// Work on a copy so propagation never mutates the caller's plan.
	ops := make([]Operation, len(plan.Operations))
	copy(ops, plan.Operations)

	results := make([]OpResult, 0, len(ops))
	appliedTargets := make(map[string]bool)

	for i := range ops {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		op := ops[i]

		exists, err := a.fs.Exists(op.OriginalPath)
		if err != nil {
			results = append(results, OpResult{Op: op, Status: StatusFailed, Err: err})
			continue
		}
		if !exists {
			results = append(results, OpResult{
				Op:     op,
				Status: StatusSkipped,
				Err:    fmt.Errorf("source vanished before apply: %s", op.OriginalPath),
			})
			continue
		}

		var res OpResult
		switch op.Kind {
		case OpRename:
			res = a.applyRename(op, appliedTargets)
		default:
			res = a.applyDelete(op)
		}
		results = append(results, res)

		// Ancestor-rename propagation: a renamed directory silently moved
		// everything beneath it, so pending operations must follow.
		if res.Status == StatusApplied && op.Kind == OpRename && op.IsDir {
			propagate(ops[i+1:], op.OriginalPath, res.FinalTarget)
		}
	}

	return results, nil
}

// applyRename renames op.OriginalPath, re-resolving the target against the
// live filesystem first. Bundle-typed directories are copied recursively,
// verified, then removed at the source.
func (a *Applier) applyRename(op Operation, appliedTargets map[string]bool) OpResult {
	target, err := a.resolveApplyTarget(op.TargetPath, appliedTargets)
	if err != nil {
		return OpResult{Op: op, Status: StatusFailed, Err: err}
	}

	if op.Bundle && op.IsDir {
		if err := a.copyThenRemove(op.OriginalPath, target); err != nil {
			return OpResult{Op: op, Status: StatusFailed, Err: err}
		}
	} else {
		if err := a.fs.Rename(op.OriginalPath, target); err != nil {
			return OpResult{Op: op, Status: StatusFailed, Err: err}
		}
	}

	appliedTargets[target] = true
	return OpResult{Op: op, Status: StatusApplied, FinalTarget: target}
}

// applyDelete removes the entry for the delete kinds.
func (a *Applier) applyDelete(op Operation) OpResult {
	var err error
	if op.IsDir {
		err = a.fs.RemoveAll(op.OriginalPath)
	} else {
		err = a.fs.Remove(op.OriginalPath)
	}
	if err != nil {
		return OpResult{Op: op, Status: StatusFailed, Err: err}
	}
	return OpResult{Op: op, Status: StatusApplied}
}

// resolveApplyTarget re-checks the planned target for collisions at apply
// time. The filesystem may have changed during the confirmation pause, so
// apply-time resolution is authoritative; the numeric tie-break matches the
// planner's.
func (a *Applier) resolveApplyTarget(planned string, appliedTargets map[string]bool) (string, error) {
	free, err := a.targetFree(planned, appliedTargets)
	if err != nil {
		return "", err
	}
	if free {
		return planned, nil
	}

	dir := filepath.Dir(planned)
	base, ext := sanitize.SplitExt(filepath.Base(planned))
	for counter := 1; counter <= maxSuffix; counter++ {
		candidate := filepath.Join(dir, suffixed(base, ext, counter))
		free, err := a.targetFree(candidate, appliedTargets)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free target found for %s", planned)
}

// maxSuffix bounds the apply-time tie-break loop.
const maxSuffix = 10000

func (a *Applier) targetFree(target string, appliedTargets map[string]bool) (bool, error) {
	if appliedTargets[target] {
		return false, nil
	}
	exists, err := a.fs.Exists(target)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// copyThenRemove implements the bundle rename strategy: copy recursively,
// verify the copy landed as a directory, then remove the source. A failed
// verification leaves the source untouched.
func (a *Applier) copyThenRemove(src, dst string) error {
	if err := a.fs.Copy(src, dst); err != nil {
		return fmt.Errorf("bundle copy failed: %w", err)
	}

	info, err := a.fs.Lstat(dst)
	if err != nil || !info.IsDir() {
		// Best-effort cleanup of the partial copy; the source stays.
		_ = a.fs.RemoveAll(dst)
		if err == nil {
			err = fmt.Errorf("copy target %s is not a directory", dst)
		}
		return fmt.Errorf("bundle copy verification failed: %w", err)
	}

	if err := a.fs.RemoveAll(src); err != nil {
		return fmt.Errorf("bundle source removal failed: %w", err)
	}
	return nil
}

// propagate rewrites the paths of still-pending operations that live under
// oldPrefix, substituting newPrefix. Already-applied operations are never
// touched; the caller passes only the pending tail.
func propagate(pending []Operation, oldPrefix, newPrefix string) {
	for i := range pending {
		pending[i].OriginalPath = reprefix(pending[i].OriginalPath, oldPrefix, newPrefix)
		if pending[i].TargetPath != "" {
			pending[i].TargetPath = reprefix(pending[i].TargetPath, oldPrefix, newPrefix)
		}
	}
}

// reprefix substitutes newPrefix for oldPrefix when path is a descendant of
// oldPrefix. Prefix matching is path-segment aware: "/a/bc" is not under
// "/a/b".
func reprefix(path, oldPrefix, newPrefix string) string {
	sep := string(os.PathSeparator)
	if !strings.HasPrefix(path, oldPrefix+sep) {
		return path
	}
	return newPrefix + strings.TrimPrefix(path, oldPrefix)
}
