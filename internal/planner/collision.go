package planner

import (
	"fmt"
	"path/filepath"

	"github.com/Keav/smbfix/internal/sanitize"
)

// resolveTarget returns a collision-free sibling path for cleaned inside
// dir. A candidate is taken when it already exists on disk or when another
// queued operation claims it. Ties are broken with "_1", "_2", ... before
// the extension; when the cleaned base name is empty the counter alone
// becomes the base ("1.ext", "2.ext", ...).
//
// Plan-time resolution is provisional: the applier re-resolves against the
// live filesystem, since it may have changed during the confirmation pause.
func (s *Scanner) resolveTarget(dir, cleaned string, claimed map[string]bool, plan *Plan) string {
	target := filepath.Join(dir, cleaned)
	if !s.taken(target, claimed) {
		claimed[target] = true
		return target
	}

	base, ext := sanitize.SplitExt(cleaned)
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, suffixed(base, ext, counter))
		if s.taken(candidate, claimed) {
			continue
		}
		claimed[candidate] = true
		plan.AddWarning(fmt.Sprintf("%s already taken, using %s", target, candidate))
		return candidate
	}
}

// taken reports whether target exists on disk or is claimed by a queued
// operation.
func (s *Scanner) taken(target string, claimed map[string]bool) bool {
	if claimed[target] {
		return true
	}
	exists, err := s.fs.Exists(target)
	if err != nil {
		// Unknowable counts as free; the applier re-checks against the
		// live filesystem and failures there are per-operation.
		return false
	}
	return exists
}

// suffixed builds the counter-suffixed candidate name.
func suffixed(base, ext string, counter int) string {
	if base == "" {
		return fmt.Sprintf("%d%s", counter, ext)
	}
	return fmt.Sprintf("%s_%d%s", base, counter, ext)
}
