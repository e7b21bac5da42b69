package planner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Keav/smbfix/internal/fsops"
	"github.com/Keav/smbfix/internal/platform"
	"github.com/Keav/smbfix/internal/sanitize"
)

// Scanner walks a directory tree and builds a Plan. It never mutates the
// filesystem; applying the plan is the Applier's job.
type Scanner struct {
	fs      fsops.FS
	profile platform.Profile

	// ExtraExcludes holds additional exclude-marker substrings from
	// configuration.
	ExtraExcludes []string

	// Visit, when set, is called for every non-excluded entry before
	// classification. The engine hooks the permission-repair pass here.
	Visit func(path string, isDir bool)
}

// NewScanner creates a Scanner using fs for all filesystem access.
func NewScanner(fs fsops.FS, profile platform.Profile) *Scanner {
	return &Scanner{fs: fs, profile: profile}
}

// Scan walks root depth-first and returns the resulting Plan, with
// operations ordered deepest-first. The root directory itself is never
// renamed; only its contents are evaluated. Per-path errors become plan
// warnings, not failures; the only returned error is context cancellation.
func (s *Scanner) Scan(ctx context.Context, root string) (*Plan, error) {
	plan := NewPlan(root)
	claimed := make(map[string]bool)

	if err := s.scanDir(ctx, root, plan, claimed); err != nil {
		return plan, err
	}

	plan.sortDeepestFirst()
	return plan, nil
}

// scanDir evaluates the contents of dir. Subdirectories are recursed into
// first, under their pre-rename paths, and each directory's own potential
// rename is queued like any other entry: only the queued path value differs,
// the contents were already scanned under the original path.
func (s *Scanner) scanDir(ctx context.Context, dir string, plan *Plan, claimed map[string]bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		plan.AddWarning(fmt.Sprintf("cannot list %s: %v", dir, err))
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if Excluded(path, s.ExtraExcludes) {
			continue
		}
		if s.Visit != nil {
			s.Visit(path, true)
		}
		if err := s.scanDir(ctx, path, plan, claimed); err != nil {
			return err
		}
		s.evaluateDir(path, entry.Name(), plan, claimed)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, entry.Name())
		if Excluded(path, s.ExtraExcludes) {
			continue
		}
		if s.Visit != nil {
			s.Visit(path, false)
		}
		s.evaluateFile(path, entry.Name(), plan, claimed)
	}

	return nil
}

// evaluateDir queues a rename for a directory whose own name needs cleaning.
// Bundle-typed directories are flagged for copy-then-remove.
func (s *Scanner) evaluateDir(path, name string, plan *Plan, claimed map[string]bool) {
	cleaned, warnings := sanitize.Clean(name)
	for _, w := range warnings {
		plan.AddWarning(w)
	}
	if cleaned == name {
		return
	}

	target := s.resolveTarget(filepath.Dir(path), cleaned, claimed, plan)
	plan.AddOperation(Operation{
		Kind:         OpRename,
		OriginalPath: path,
		TargetPath:   target,
		IsDir:        true,
		Bundle:       isBundleDir(name),
	})
}

// evaluateFile classifies a file entry. First match wins: legacy shortcut
// artifact, foreign alias file (limited profiles only), custom-icon sidecar,
// and finally a sanitizer-driven rename.
func (s *Scanner) evaluateFile(path, name string, plan *Plan, claimed map[string]bool) {
	if s.profile.IsShortcut(name) {
		plan.AddOperation(Operation{Kind: OpDeleteShortcut, OriginalPath: path})
		return
	}

	if s.profile.LimitedCapability() && s.sniffAlias(path) {
		plan.AddOperation(Operation{Kind: OpDeleteAlias, OriginalPath: path})
		return
	}

	if size, ok := s.fileSize(path); ok && isIconSidecar(name, size) {
		plan.AddOperation(Operation{Kind: OpDeleteIcon, OriginalPath: path})
		return
	}

	cleaned, warnings := sanitize.Clean(name)
	for _, w := range warnings {
		plan.AddWarning(w)
	}
	if cleaned == name {
		return
	}

	target := s.resolveTarget(filepath.Dir(path), cleaned, claimed, plan)
	plan.AddOperation(Operation{
		Kind:         OpRename,
		OriginalPath: path,
		TargetPath:   target,
	})
}

// sniffAlias reads the first bytes of path and checks the alias signature.
// Unreadable files are simply not aliases.
func (s *Scanner) sniffAlias(path string) bool {
	head, err := s.fs.ReadFileHead(path, aliasSniffLen)
	if err != nil {
		return false
	}
	return isAliasHeader(head)
}

// fileSize returns the size of path, or ok=false when it cannot be stat'd.
func (s *Scanner) fileSize(path string) (int64, bool) {
	info, err := s.fs.Lstat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}
