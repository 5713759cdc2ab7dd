package fabrik

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// RunFlag is the editor command-line switch that executes a script file.
const RunFlag = "-run"

// CommandFunc builds the command for the editor. It has the signature of
// exec.CommandContext so tests can substitute a fake editor.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Invoker launches the external editor on a materialized script.
type Invoker struct {
	// Command defaults to exec.CommandContext.
	Command CommandFunc
	// Timeout bounds the wait for the editor; zero waits until it exits.
	Timeout time.Duration
}

// Invoke runs "<editorPath> -run <scriptPath>" and blocks until the editor
// exits. Success returns a confirmation naming the script path; a failure
// exit returns a KindEditorExecution error carrying the editor's stderr.
func (inv Invoker) Invoke(ctx context.Context, editorPath, scriptPath string) (string, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	command := inv.Command
	if command == nil {
		command = exec.CommandContext
	}
	cmd := command(ctx, editorPath, RunFlag, scriptPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			return "", canceled(editorPath, ctx.Err())
		}
		return "", &Error{Kind: KindSpawn, Op: "cannot launch editor", Path: editorPath, Err: err}
	}

	err := cmd.Wait()
	if ctx.Err() != nil {
		return "", canceled(editorPath, ctx.Err())
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &Error{
				Kind:   KindEditorExecution,
				Op:     "editor failed",
				Stderr: stderr.String(),
				Err:    err,
			}
		}
		return "", &Error{Kind: KindSpawn, Op: "editor did not complete", Path: editorPath, Err: err}
	}

	return fmt.Sprintf("script executed successfully (temp script: %s)", scriptPath), nil
}

func canceled(editorPath string, err error) error {
	op := "editor run canceled"
	if errors.Is(err, context.DeadlineExceeded) {
		op = "editor run timed out"
	}
	return &Error{Kind: KindCanceled, Op: op, Path: editorPath, Err: err}
}
