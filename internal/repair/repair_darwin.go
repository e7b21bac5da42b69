//go:build darwin

package repair

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/Keav/smbfix/internal/report"
)

// Minimum access the share needs: owner read/write on files, plus traverse
// on directories.
const (
	minFileBits os.FileMode = 0600
	minDirBits  os.FileMode = 0700
)

// Fixer repairs locks, ownership, and permissions on macOS. All failures
// are reported as warnings; repair never blocks the rename pass.
type Fixer struct {
	session *Session
	sink    report.Sink
	uid     int
}

// NewFixer creates a Fixer bound to session.
func NewFixer(session *Session, sink report.Sink) *Fixer {
	return &Fixer{
		session: session,
		sink:    sink,
		uid:     os.Getuid(),
	}
}

// Repair unlocks path if the uchg flag is set, then fixes ownership and
// minimum permissions.
func (f *Fixer) Repair(ctx context.Context, path string, isDir bool) {
	f.unlock(ctx, path)
	f.fixOwnership(ctx, path)
	f.fixPermissions(path, isDir)
}

// unlock clears the immutable flag recursively, but only when it is
// actually set: the check avoids a sudo round trip per entry.
func (f *Fixer) unlock(ctx context.Context, path string) {
	locked, err := f.isLocked(ctx, path)
	if err != nil || !locked {
		return
	}

	f.sink.Infof("🔓 Unlocking: %s", path)
	if err := f.session.PrimeSudo(ctx); err != nil {
		f.sink.Warnf("cannot unlock %s: %v", path, err)
		return
	}

	cmd := exec.CommandContext(ctx, "sudo", "chflags", "-R", "nouchg", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		f.sink.Warnf("failed to unlock %s: %v: %s", path, err, strings.TrimSpace(string(out)))
	}
}

// isLocked reports whether path (or anything under it) carries the uchg
// flag.
func (f *Fixer) isLocked(ctx context.Context, path string) (bool, error) {
	out, err := exec.CommandContext(ctx, "find", path, "-flags", "uchg").Output()
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// fixOwnership chowns path to the session user when the file belongs to
// someone else.
func (f *Fixer) fixOwnership(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || int(st.Uid) == f.uid {
		return
	}

	f.sink.Infof("🛠 Changing ownership: %s", path)
	if err := f.session.PrimeSudo(ctx); err != nil {
		f.sink.Warnf("cannot change ownership of %s: %v", path, err)
		return
	}

	owner := fmt.Sprintf("%s:staff", f.session.User)
	cmd := exec.CommandContext(ctx, "sudo", "chown", "-R", owner, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		f.sink.Warnf("failed to change ownership of %s: %v: %s", path, err, strings.TrimSpace(string(out)))
	}
}

// fixPermissions raises path to the minimum mode bits the share needs.
func (f *Fixer) fixPermissions(path string, isDir bool) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	min := minFileBits
	if isDir {
		min = minDirBits
	}
	if info.Mode().Perm()&min == min {
		return
	}

	f.sink.Infof("🛠 Fixing permissions: %s", path)
	if err := os.Chmod(path, info.Mode().Perm()|min); err != nil {
		f.sink.Warnf("failed to fix permissions of %s: %v", path, err)
	}
}
