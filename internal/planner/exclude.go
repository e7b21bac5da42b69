package planner

import (
	"os"
	"strings"
)

// Library bundles and sidecar conventions the planner must never reach into.
// Renaming entries inside a photo library or mail archive corrupts the
// bundle; AppleDouble sidecars are owned by the files they shadow.
var excludedBundleExts = []string{".photoslibrary", ".abbu", ".mbox"}

// excludeMarker flags legacy iPhoto libraries, which carry no extension.
const excludeMarker = "iPhoto Library"

// sidecarPrefix is the AppleDouble extended-attributes naming convention.
const sidecarPrefix = "._"

// Excluded reports whether path is off-limits: its name or any ancestor
// segment is a protected bundle, a sidecar, or carries an exclude marker.
// Pure predicate over the path string; extra holds additional marker
// substrings from configuration.
func Excluded(path string, extra []string) bool {
	if strings.Contains(path, excludeMarker) {
		return true
	}
	for _, marker := range extra {
		if marker != "" && strings.Contains(path, marker) {
			return true
		}
	}
	for _, seg := range strings.Split(path, string(os.PathSeparator)) {
		if strings.HasPrefix(seg, sidecarPrefix) {
			return true
		}
		lower := strings.ToLower(seg)
		for _, ext := range excludedBundleExts {
			if strings.HasSuffix(lower, ext) {
				return true
			}
		}
	}
	return false
}
