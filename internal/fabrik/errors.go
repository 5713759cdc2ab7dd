package fabrik

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies pipeline failures.
type Kind int

const (
	// KindPathResolution: a required directory cannot be derived from the runtime environment.
	KindPathResolution Kind = iota + 1
	// KindAssetNotFound: a required asset directory is absent.
	KindAssetNotFound
	// KindIO: script read or temporary file write failed.
	KindIO
	// KindSpawn: the editor executable could not be launched.
	KindSpawn
	// KindEditorExecution: the editor ran but exited with a failure status.
	KindEditorExecution
	// KindCanceled: the run was canceled or timed out while waiting for the editor.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindPathResolution:
		return "path resolution"
	case KindAssetNotFound:
		return "asset not found"
	case KindIO:
		return "io"
	case KindSpawn:
		return "spawn"
	case KindEditorExecution:
		return "editor execution"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is returned by every pipeline step.
type Error struct {
	Kind   Kind
	Op     string // short description of the failed step
	Path   string // path involved, if any
	Stderr string // editor standard error, KindEditorExecution only
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	switch {
	case e.Kind == KindEditorExecution && e.Stderr != "":
		fmt.Fprintf(&b, ": %s", strings.TrimRight(e.Stderr, "\r\n"))
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a pipeline Error of kind k.
func IsKind(err error, k Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == k
	}
	return false
}

// KindOf returns the pipeline error kind of err, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
