package planner

import (
	"os"
	"sort"
	"strings"
)

// Operation kind constants
const (
	OpRename         = "rename"
	OpDeleteAlias    = "delete_alias"
	OpDeleteIcon     = "delete_icon"
	OpDeleteShortcut = "delete_shortcut"
)

// Operation represents a single planned filesystem mutation.
type Operation struct {
	// Kind is the operation kind: "rename", "delete_alias", "delete_icon",
	// "delete_shortcut"
	Kind string

	// OriginalPath is where the entry lived when the plan was built. The
	// applier rewrites it in pending operations when an ancestor directory
	// rename moves the entry underneath them.
	OriginalPath string

	// TargetPath is the rename destination (empty for delete kinds)
	TargetPath string

	// IsDir reports whether the entry is a directory
	IsDir bool

	// Bundle marks a bundle-typed directory that must be renamed via
	// copy-then-remove instead of a plain rename
	Bundle bool
}

// Plan is the ordered, materialized set of rename/delete intents produced
// before any filesystem mutation occurs.
type Plan struct {
	// Root is the scan root the plan was built for
	Root string

	// Operations is the ordered list of operations, deepest paths first
	Operations []Operation

	// Warnings is the list of non-fatal planning diagnostics
	Warnings []string
}

// NewPlan creates a new empty Plan for root.
func NewPlan(root string) *Plan {
	return &Plan{
		Root:       root,
		Operations: []Operation{},
		Warnings:   []string{},
	}
}

// AddOperation adds an operation to the plan.
func (p *Plan) AddOperation(op Operation) {
	p.Operations = append(p.Operations, op)
}

// AddWarning adds a planning warning to the plan.
func (p *Plan) AddWarning(w string) {
	p.Warnings = append(p.Warnings, w)
}

// Empty returns true if the plan contains no operations.
func (p *Plan) Empty() bool {
	return len(p.Operations) == 0
}

// Depth counts the path separators in path. Deeper paths have higher depth.
func Depth(path string) int {
	return strings.Count(path, string(os.PathSeparator))
}

// sortDeepestFirst orders operations so children are applied before their
// parents. A parent rename would otherwise invalidate the original path of
// every descendant operation still queued behind it. The sort is stable so
// walk order is preserved within one depth.
func (p *Plan) sortDeepestFirst() {
	sort.SliceStable(p.Operations, func(i, j int) bool {
		return Depth(p.Operations[i].OriginalPath) > Depth(p.Operations[j].OriginalPath)
	})
}
