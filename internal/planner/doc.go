// Package planner handles the planning and apply phases of a filename fix.
//
// The Scanner walks a directory tree depth-first, classifies every entry
// (legacy shortcut, foreign alias file, custom-icon sidecar, or a name the
// sanitizer wants to change), and materializes an explicit Plan. Nothing is
// mutated during the walk.
//
// The Applier executes a Plan deepest-first. Because the walk visits
// children under a directory's pre-rename path while that directory's own
// rename sits in the same plan, the applier rewrites the paths of
// still-pending operations immediately after each directory rename lands.
//
// Key responsibilities:
//   - Build a Plan with operations ordered deepest paths first
//   - Resolve target-name collisions with numeric suffixes
//   - Propagate ancestor renames into pending operations
//   - Collect per-operation results without aborting the batch
package planner
