package engine

import (
	"time"

	"github.com/Keav/smbfix/internal/planner"
)

// ScanRequest represents a request to scan a tree and build a plan.
type ScanRequest struct {
	// Root is the directory to scan
	Root string
}

// ScanResult represents the outcome of a scan.
type ScanResult struct {
	// RunID uniquely identifies this run in reports
	RunID string

	// Plan is the materialized plan, deepest paths first
	Plan *planner.Plan
}

// ApplyRequest represents a request to apply a previously built plan.
type ApplyRequest struct {
	// Plan is the plan to apply
	Plan *planner.Plan
}

// ApplyResult represents the outcome of applying a plan.
type ApplyResult struct {
	// Results holds one entry per operation, in apply order
	Results []planner.OpResult

	// Duration is how long the apply pass took
	Duration time.Duration
}

// Applied counts successfully applied operations.
func (r *ApplyResult) Applied() int {
	return r.count(planner.StatusApplied)
}

// Skipped counts operations skipped because their source vanished.
func (r *ApplyResult) Skipped() int {
	return r.count(planner.StatusSkipped)
}

// Failed counts operations that failed.
func (r *ApplyResult) Failed() int {
	return r.count(planner.StatusFailed)
}

func (r *ApplyResult) count(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
