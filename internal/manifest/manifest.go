// Package manifest describes pack jobs: which source roots to search, which
// files to pack, and where the container is written.
package manifest

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Manifest is the on-disk pack configuration. YAML and JSON are both
// accepted; YAML is converted through JSON, so the json tags are the single
// source of field names.
type Manifest struct {
	// Roots are candidate source directories, tried in order. The first
	// one that exists wins.
	Roots []string `json:"roots,omitempty"`
	// Files are the names to pack, resolved under the chosen root.
	Files []string `json:"files,omitempty"`
	// Output is the path the container is written to.
	Output string `json:"output,omitempty"`
}

// Default returns the built-in configuration used when no manifest is
// provided: the stock xiaozhi font component locations and the assets.bin
// output consumed by the device's asset partition.
func Default() Manifest {
	return Manifest{
		Roots: []string{
			"managed_components/78__xiaozhi-fonts/cbin",
			"managed_components/xiaozhi-fonts/cbin",
			"../managed_components/78__xiaozhi-fonts/cbin",
			"../managed_components/xiaozhi-fonts/cbin",
		},
		Files: []string{
			"font_puhui_common_14_1.bin",
			"font_puhui_common_20_4.bin",
		},
		Output: "assets.bin",
	}
}

// Load reads and parses the manifest at path. Unknown keys are rejected.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path is intentional
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// WithDefaults returns a copy of m with empty fields filled from Default().
func (m Manifest) WithDefaults() Manifest {
	d := Default()
	if len(m.Roots) == 0 {
		m.Roots = d.Roots
	}
	if len(m.Files) == 0 {
		m.Files = d.Files
	}
	if m.Output == "" {
		m.Output = d.Output
	}
	return m
}
