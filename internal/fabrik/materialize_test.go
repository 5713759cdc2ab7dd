package fabrik

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func TestBuildScript(t *testing.T) {
	actions := model.NewActionPathSet("/srv/assets/fabrik/actions")
	body := "alert(params.largeur);\n"

	got := BuildScript(`{"largeur": 10}`, body, actions)

	want := "// Parametres generes par GraphiDesk FabRik\n" +
		"// Chemins des actions:\n" +
		"// - Vecto Texte: /srv/assets/fabrik/actions/Vecto_Texte.aia\n" +
		"// - Offset: /srv/assets/fabrik/actions/OffsetSet.aia\n" +
		"var params = {\"largeur\": 10};\n" +
		"// Script original\n" +
		body
	assert.Equal(t, want, got)
}

func TestMaterialize_WritesTempScript(t *testing.T) {
	src := filepath.Join(t.TempDir(), "caisson_generation.jsx")
	require.NoError(t, os.WriteFile(src, []byte("run();"), 0644))

	m := Materializer{TempDir: t.TempDir()}
	out, err := m.Materialize(src, "{}", testActions(), "job42")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(m.TempDir, "fabrik_job42.jsx"), out.Path)
	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, out.Content, string(data))
	assert.True(t, strings.HasSuffix(out.Content, "// Script original\nrun();"))
}

func TestMaterialize_OverwritesSameID(t *testing.T) {
	src := filepath.Join(t.TempDir(), "s.jsx")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0644))
	m := Materializer{TempDir: t.TempDir()}

	_, err := m.Materialize(src, "{}", testActions(), "same")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, []byte("second"), 0644))
	out, err := m.Materialize(src, "{}", testActions(), "same")
	require.NoError(t, err)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "second"))
}

func TestMaterialize_UniquePathPerRun(t *testing.T) {
	m := Materializer{TempDir: t.TempDir()}
	a := m.TempPath("")
	b := m.TempPath("")
	assert.NotEqual(t, a, b)
	assert.Equal(t, m.TempDir, filepath.Dir(a))
}

func TestMaterialize_MissingSource(t *testing.T) {
	m := Materializer{TempDir: t.TempDir()}
	missing := filepath.Join(t.TempDir(), "nope.jsx")

	_, err := m.Materialize(missing, "{}", testActions(), "x")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIO))
	assert.Contains(t, err.Error(), missing)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaterialize_UnwritableDestination(t *testing.T) {
	src := filepath.Join(t.TempDir(), "s.jsx")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))
	m := Materializer{TempDir: filepath.Join(t.TempDir(), "does", "not", "exist")}

	_, err := m.Materialize(src, "{}", testActions(), "x")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIO))
	assert.Contains(t, err.Error(), "cannot write temporary script")
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "___etc_passwd", sanitizeID("../etc/passwd"))
	assert.Equal(t, "a1-B_2", sanitizeID("a1-B_2"))
}
