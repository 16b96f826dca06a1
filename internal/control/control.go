// Package control sends commands to the reflector host: raw DTMF and PTT
// bytes to the control files svxlink reads, and service/power actions via
// sudo.
package control

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
)

var (
	// ErrUnknownAction is returned for action names outside Actions.
	ErrUnknownAction = errors.New("unsupported system action")
	// ErrEmptyCommand is returned when there is nothing to write.
	ErrEmptyCommand = errors.New("empty command")
)

// Writer writes raw command bytes to the DTMF and PTT control files.
type Writer struct {
	DTMFPath string
	PTTPath  string
}

// WriteDTMF sends DTMF digits to the reflector.
func (w Writer) WriteDTMF(digits string) error {
	if err := writeControl(w.DTMFPath, digits); err != nil {
		return fmt.Errorf("write dtmf: %w", err)
	}
	return nil
}

// WritePTT sets push-to-talk state, typically "0" or "1".
func (w Writer) WritePTT(value string) error {
	if err := writeControl(w.PTTPath, value); err != nil {
		return fmt.Errorf("write ptt: %w", err)
	}
	return nil
}

// The control files are FIFOs or pty links owned by svxlink, so they are
// opened for writing without create or truncate.
func writeControl(path, payload string) error {
	if payload == "" {
		return ErrEmptyCommand
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(payload); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ActionNames lists the supported system actions.
var ActionNames = []string{"restart", "stop", "shutdown", "reboot"}

// Actions maps action names to privileged commands.
type Actions struct {
	Service string
	Runner  Runner
}

// Command returns the argv for an action.
func (a Actions) Command(action string) ([]string, error) {
	switch action {
	case "restart", "stop":
		return []string{"sudo", "systemctl", action, a.Service}, nil
	case "shutdown":
		return []string{"sudo", "shutdown", "-h", "now"}, nil
	case "reboot":
		return []string{"sudo", "reboot"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Run executes the named action.
func (a Actions) Run(ctx context.Context, action string) error {
	if !slices.Contains(ActionNames, action) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	argv, err := a.Command(action)
	if err != nil {
		return err
	}
	runner := a.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	out, err := runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("failed to %s: %w: %s", action, err, msg)
		}
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	return nil
}
