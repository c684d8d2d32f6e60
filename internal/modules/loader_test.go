package modules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()

	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestManifestDefaults(t *testing.T) {
	root := t.TempDir()

	manifest, err := LoadManifest(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(root), manifest.Name)
	assert.Equal(t, []string{"**/*.ql"}, manifest.Sources)
}

func TestManifestFromYaml(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "quill.yaml", "name: demo\nsources:\n  - src/**/*.ql\n")

	manifest, err := LoadManifest(root)
	require.NoError(t, err)

	assert.Equal(t, "demo", manifest.Name)
	assert.Equal(t, []string{"src/**/*.ql"}, manifest.Sources)
}

func TestLoadOrdersDependenciesFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.ql", "use util\nlet r = 1\nr")
	writeFile(t, root, "util.ql", "def ident Int -> Int { |x| x }")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	mods, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, mods, 2)

	assert.Equal(t, "util", mods[0].Name)
	assert.Equal(t, "app", mods[1].Name)

	for _, mod := range mods {
		assert.NotEqual(t, "", mod.ID.String())
		assert.False(t, mod.HasErrors(), "diagnostics: %v", mod.Diagnostics)
	}
}

func TestQualifiedImportResolution(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib/math.ql", "def double Int -> Int { |x| x }")
	writeFile(t, root, "main.ql", "use lib/math as math\nmath.double 21")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	mods, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, mods, 2)

	var main *Module
	for _, mod := range mods {
		if mod.Name == "main" {
			main = mod
		}
	}
	require.NotNil(t, main)
	assert.False(t, main.HasErrors(), "diagnostics: %v", main.Diagnostics)
}

func TestMissingImportReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.ql", "use missing/module\n1")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	mods, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, mods, 1)

	assert.True(t, mods[0].HasErrors())
}

func TestCyclicImportReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ql", "use b\n1")
	writeFile(t, root, "b.ql", "use a\n2")

	loader, err := NewLoader(root)
	require.NoError(t, err)

	mods, err := loader.Load()
	require.NoError(t, err)

	cycleReported := false
	for _, mod := range mods {
		for _, d := range mod.Diagnostics {
			if string(d.Code) == "M002" {
				cycleReported = true
			}
		}
	}
	assert.True(t, cycleReported)
}
