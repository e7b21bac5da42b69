// Package platform detects the execution profile of the host.
//
// The profile decides how much of the tool runs: macOS gets the full
// treatment (filename fixes plus permission/ownership/lock repair), Synology
// NAS units and every other OS are limited to filename fixes. The profile
// also gates alias deletion: Finder alias files are only dead weight on
// hosts that cannot resolve them.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Profile kinds.
const (
	ProfileFull    = "full"
	ProfileNAS     = "nas"
	ProfileLimited = "limited"
)

// synologyMarker exists on every Synology DSM installation.
const synologyMarker = "/etc/synoinfo.conf"

// shortcutExts are extensions of legacy shortcut/link artifacts that have no
// business living on an SMB share.
var shortcutExts = []string{".lnk", ".url"}

// Profile describes the capability level of the host.
type Profile struct {
	// Kind is one of ProfileFull, ProfileNAS, ProfileLimited.
	Kind string

	// OS is the value of runtime.GOOS at detection time.
	OS string
}

// Detect inspects the host and returns its profile.
func Detect() Profile {
	return detect(runtime.GOOS, func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
}

// detect is the testable core of Detect.
func detect(goos string, exists func(string) bool) Profile {
	p := Profile{OS: goos, Kind: ProfileLimited}
	switch {
	case goos == "darwin":
		p.Kind = ProfileFull
	case exists(synologyMarker):
		p.Kind = ProfileNAS
	}
	return p
}

// FullCapability reports whether the host supports permission, ownership,
// and lock repair in addition to filename fixes.
func (p Profile) FullCapability() bool {
	return p.Kind == ProfileFull
}

// LimitedCapability reports whether the host is restricted to filename
// fixes. Alias deletion only applies here: on a full-capability host the
// alias files still resolve and are left alone.
func (p Profile) LimitedCapability() bool {
	return !p.FullCapability()
}

// IsShortcut reports whether name carries a legacy shortcut extension.
func (p Profile) IsShortcut(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range shortcutExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Describe returns a one-line human-readable summary of the profile.
func (p Profile) Describe() string {
	switch p.Kind {
	case ProfileFull:
		return "macOS - full fixes including permissions, ownership and locks"
	case ProfileNAS:
		return "Synology NAS - limited to filename fixes only"
	default:
		return p.OS + " - limited to filename fixes only"
	}
}
