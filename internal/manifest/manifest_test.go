package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assetpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	m := Default()
	assert.Equal(t, []string{
		"managed_components/78__xiaozhi-fonts/cbin",
		"managed_components/xiaozhi-fonts/cbin",
		"../managed_components/78__xiaozhi-fonts/cbin",
		"../managed_components/xiaozhi-fonts/cbin",
	}, m.Roots)
	assert.Equal(t, []string{
		"font_puhui_common_14_1.bin",
		"font_puhui_common_20_4.bin",
	}, m.Files)
	assert.Equal(t, "assets.bin", m.Output)
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
roots:
  - components/fonts/cbin
files:
  - font_a.bin
  - font_b.bin
output: build/assets.bin
`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"components/fonts/cbin"}, m.Roots)
	assert.Equal(t, []string{"font_a.bin", "font_b.bin"}, m.Files)
	assert.Equal(t, "build/assets.bin", m.Output)
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `{"roots":["r"],"files":["f.bin"],"output":"o.bin"}`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, m.Roots)
	assert.Equal(t, []string{"f.bin"}, m.Files)
	assert.Equal(t, "o.bin", m.Output)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `
files:
  - f.bin
compression: zstd
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	m := Manifest{Files: []string{"only.bin"}}.WithDefaults()
	assert.Equal(t, Default().Roots, m.Roots)
	assert.Equal(t, []string{"only.bin"}, m.Files)
	assert.Equal(t, "assets.bin", m.Output)

	full := Manifest{Roots: []string{"r"}, Files: []string{"f"}, Output: "o"}.WithDefaults()
	assert.Equal(t, Manifest{Roots: []string{"r"}, Files: []string{"f"}, Output: "o"}, full)
}
