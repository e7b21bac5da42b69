package planner

import (
	"bytes"
	"strings"
)

// aliasSignature is the fixed header of a macOS bookmark/alias container.
// Alias files start with "book", four zero bytes, "mark", four zero bytes.
var aliasSignature = []byte("book\x00\x00\x00\x00mark\x00\x00\x00\x00")

const aliasSniffLen = 16

// Custom-icon sidecar detection: Finder writes a file literally named
// "Icon\r" whose data fork is empty or nearly so.
const (
	iconPrefix  = "Icon"
	iconMaxSize = 4096
)

// bundleExts mark directories that the originating OS treats as one atomic
// application bundle. Renaming them in place can confuse open handles, so
// the applier copies then removes instead.
var bundleExts = []string{".app", ".bundle"}

// isAliasHeader reports whether head carries the alias file signature.
func isAliasHeader(head []byte) bool {
	return len(head) >= aliasSniffLen && bytes.Equal(head[:aliasSniffLen], aliasSignature)
}

// isIconSidecar reports whether a file named name with the given size looks
// like a platform custom-icon sidecar: the short fixed prefix, at most one
// trailing control byte, and a near-empty data fork.
func isIconSidecar(name string, size int64) bool {
	if size >= iconMaxSize {
		return false
	}
	if !strings.HasPrefix(name, iconPrefix) {
		return false
	}
	rest := name[len(iconPrefix):]
	if rest == "" {
		return true
	}
	return len(rest) == 1 && rest[0] < 0x20
}

// isBundleDir reports whether a directory named name is a bundle-typed
// directory.
func isBundleDir(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range bundleExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
