package modules

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quill-lang/quill/internal/config"
)

// Manifest is the project manifest (quill.yaml) at a module tree root.
type Manifest struct {
	Name    string   `yaml:"name"`
	Sources []string `yaml:"sources"`
}

// LoadManifest reads the manifest from a project root. A missing file
// yields a default manifest (named after the directory, all source
// files included).
func LoadManifest(rootDir string) (*Manifest, error) {
	manifest := &Manifest{
		Name:    filepath.Base(rootDir),
		Sources: []string{config.DefaultSourceGlob},
	}

	data, err := os.ReadFile(filepath.Join(rootDir, config.ManifestFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return manifest, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, err
	}

	if manifest.Name == "" {
		manifest.Name = filepath.Base(rootDir)
	}
	if len(manifest.Sources) == 0 {
		manifest.Sources = []string{config.DefaultSourceGlob}
	}

	return manifest, nil
}
