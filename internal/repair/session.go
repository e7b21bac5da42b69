// Package repair fixes permissions, ownership, and immutable flags on hosts
// that support it, before the rename planner runs. It is a thin wrapper
// around OS commands (chflags, chown, chmod) executed under an explicit
// Session that caches credentials for exactly one tool invocation.
//
// On non-macOS builds the fixer is a no-op.
package repair

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"
)

// PasswordPrompt asks the operator for a password and returns it.
type PasswordPrompt func(message string) (string, error)

// Session carries the credential state of one tool invocation: the cached
// password and whether the sudo timestamp has been primed. It replaces
// process-global state; its lifetime is one run.
type Session struct {
	// ID uniquely identifies this session in reports.
	ID string

	// User is the account the repair commands run for.
	User string

	prompt     PasswordPrompt
	password   string
	havePass   bool
	sudoPrimed bool
}

// NewSession creates a Session for user. prompt is invoked at most once,
// the first time a password is needed.
func NewSession(user string, prompt PasswordPrompt) *Session {
	return &Session{
		ID:     uuid.NewString(),
		User:   user,
		prompt: prompt,
	}
}

// Password returns the cached password, prompting on first use.
func (s *Session) Password() (string, error) {
	if s.havePass {
		return s.password, nil
	}
	if s.prompt == nil {
		return "", errors.New("no password prompt configured")
	}
	pw, err := s.prompt(fmt.Sprintf("Password for %s: ", s.User))
	if err != nil {
		return "", err
	}
	s.password = pw
	s.havePass = true
	return pw, nil
}

// PrimeSudo initializes the sudo timestamp once per session so repeated
// repair commands do not each prompt for a password.
func (s *Session) PrimeSudo(ctx context.Context) error {
	if s.sudoPrimed {
		return nil
	}
	pw, err := s.Password()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "sudo", "-S", "-p", "", "true")
	cmd.Stdin = strings.NewReader(pw + "\n")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to initialize sudo session: %v: %s", err, strings.TrimSpace(string(out)))
	}
	s.sudoPrimed = true
	return nil
}

// TerminalPrompt reads a password from the controlling terminal without
// echoing it.
func TerminalPrompt(message string) (string, error) {
	fmt.Fprint(os.Stderr, message)
	defer fmt.Fprintln(os.Stderr)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// CurrentUser returns the invoking user's name, falling back to the USER
// environment variable.
func CurrentUser() string {
	if out, err := exec.Command("whoami").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}
	return os.Getenv("USER")
}
