package fabrik

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const fakeEditorEnv = "GRAPHIDESK_FAKE_EDITOR"

const fakeEditorStderr = "Error 1200: the document is locked"

// TestHelperProcess is not a real test: it is re-executed by fakeEditor to
// stand in for the external editor.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv(fakeEditorEnv)
	if mode == "" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:] // editor name, -run, script path
	}

	switch mode {
	case "ok":
		os.Exit(0)
	case "fail":
		fmt.Fprint(os.Stderr, fakeEditorStderr)
		os.Exit(3)
	case "failcrlf":
		fmt.Fprint(os.Stderr, fakeEditorStderr+"\r\n")
		os.Exit(3)
	case "sleep":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	case "check":
		if len(args) != 3 || args[1] != RunFlag {
			fmt.Fprintf(os.Stderr, "unexpected arguments: %q", args)
			os.Exit(4)
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot read script: %v", err)
			os.Exit(5)
		}
		if !strings.HasPrefix(string(data), "// Parametres generes par GraphiDesk FabRik") {
			fmt.Fprint(os.Stderr, "script has no preamble")
			os.Exit(6)
		}
		os.Exit(0)
	}
	os.Exit(2)
}

// fakeEditor returns a CommandFunc that runs TestHelperProcess in mode.
func fakeEditor(mode string) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), fakeEditorEnv+"="+mode)
		return cmd
	}
}

// makeAssets creates <root>/assets/fabrik/{scripts,actions} with one script
// and returns root.
func makeAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	fabrik := filepath.Join(root, "assets", "fabrik")
	require.NoError(t, os.MkdirAll(filepath.Join(fabrik, "scripts"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(fabrik, "actions"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(fabrik, "scripts", "caisson_generation.jsx"),
		[]byte("(function (params) { alert(params.largeur); })(params);\n"),
		0644,
	))
	return root
}

func packagedLocator(root string) Locator {
	return Locator{
		Mode:        ModePackaged,
		ResourceDir: func() (string, error) { return root, nil },
	}
}
