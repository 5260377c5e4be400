package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is qcc's optional project-wide config, analogous to funxy's
// funxy.yaml (internal/ext/config.go): it never changes module semantics,
// only driver defaults. The driver applies DefaultOptLv whenever the
// command-line optimization level is 0, so an explicit -O0 does not
// override it. ImportRoots is parsed but not consulted: the loader only
// looks for imported modules in the main file's directory.
type ProjectFile struct {
	ImportRoots  []string `yaml:"import_roots"`
	DefaultOptLv int      `yaml:"default_opt_level"`
}

const projectFileName = "qcc.yaml"

// LoadProject searches dir and its ancestors for qcc.yaml and parses it.
// A missing file is not an error: it returns a zero ProjectFile.
func LoadProject(dir string) (ProjectFile, error) {
	var project ProjectFile

	dir, err := filepath.Abs(dir)
	if err != nil {
		return project, err
	}

	for {
		candidate := filepath.Join(dir, projectFileName)
		data, err := os.ReadFile(candidate)
		if err == nil {
			if err := yaml.Unmarshal(data, &project); err != nil {
				return project, err
			}
			return project, nil
		}
		if !os.IsNotExist(err) {
			return project, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return project, nil
		}
		dir = parent
	}
}
