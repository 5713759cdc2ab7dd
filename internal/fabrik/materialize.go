package fabrik

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// tempPrefix names materialized scripts in the temp directory.
const tempPrefix = "fabrik_"

// MaterializedScript is the final script text written to disk before execution.
type MaterializedScript struct {
	Path    string
	Content string
}

// Materializer writes parameterized scripts to the temp directory.
// Every run gets its own file, so concurrent runs never overwrite each
// other's script.
type Materializer struct {
	// TempDir defaults to os.TempDir().
	TempDir string
}

// TempPath returns the destination of the script for run id. An empty id
// gets a random one.
func (m Materializer) TempPath(id string) string {
	dir := m.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return filepath.Join(dir, tempPrefix+sanitizeID(id)+".jsx")
}

// Materialize reads the script at scriptPath, prepends the params preamble
// and writes the result to TempPath(id), replacing any previous file.
func (m Materializer) Materialize(scriptPath, params string, actions model.ActionPathSet, id string) (MaterializedScript, error) {
	body, err := os.ReadFile(scriptPath)
	if err != nil {
		return MaterializedScript{}, &Error{Kind: KindIO, Op: "cannot read script " + filepath.Base(scriptPath), Path: scriptPath, Err: err}
	}

	out := MaterializedScript{
		Path:    m.TempPath(id),
		Content: BuildScript(params, string(body), actions),
	}
	if err := os.WriteFile(out.Path, []byte(out.Content), 0644); err != nil {
		return MaterializedScript{}, &Error{Kind: KindIO, Op: "cannot write temporary script", Path: out.Path, Err: err}
	}
	return out, nil
}

// BuildScript returns the preamble assigning params followed by the
// original script body, untouched.
func BuildScript(params, body string, actions model.ActionPathSet) string {
	vectoTexte, _ := actions.Lookup("vectoTexte")
	offset, _ := actions.Lookup("offset")

	var b strings.Builder
	b.WriteString("// Parametres generes par GraphiDesk FabRik\n")
	b.WriteString("// Chemins des actions:\n")
	fmt.Fprintf(&b, "// - Vecto Texte: %s\n", vectoTexte)
	fmt.Fprintf(&b, "// - Offset: %s\n", offset)
	fmt.Fprintf(&b, "var params = %s;\n", params)
	b.WriteString("// Script original\n")
	b.WriteString(body)
	return b.String()
}

// sanitizeID keeps caller-supplied ids from escaping the temp directory.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
