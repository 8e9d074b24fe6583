package vars

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/teranos/uniprompt/errors"
)

// DefaultVarsFileName is the well-known relative path of the local
// variable declarations file, discovered by walking from the working
// directory up to the filesystem root.
const DefaultVarsFileName = ".uniprompt-vars.yaml"

// Definition is one entry of a local variable declarations file: either
// a plain string (static) or a mapping {type: command, value: ..., cache: ...}
// (dynamic).
type Definition struct {
	Static  string
	Command string
	Cache   bool
}

// IsCommand reports whether the definition is command-backed.
func (d Definition) IsCommand() bool {
	return d.Command != ""
}

// UnmarshalYAML accepts both the scalar and the mapping entry form.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&d.Static)
	}

	var entry struct {
		Type  string `yaml:"type"`
		Value string `yaml:"value"`
		Cache bool   `yaml:"cache"`
	}
	if err := node.Decode(&entry); err != nil {
		return errors.Wrap(err, "failed to parse variable definition")
	}
	if entry.Type != "command" {
		return errors.Newf("unknown variable definition type %q (want \"command\")", entry.Type)
	}
	d.Command = entry.Value
	d.Cache = entry.Cache
	return nil
}

// FindVarsFile walks from dir upward to the filesystem root looking for
// filename. The nearest hit wins; returns "" when no file exists.
func FindVarsFile(dir, filename string) string {
	if filename == "" {
		filename = DefaultVarsFileName
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ParseVarsFile parses a local variable declarations file: a flat
// mapping from variable name to Definition.
func ParseVarsFile(path string) (map[string]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read variables file %s", path)
	}
	defs := make(map[string]Definition)
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse variables file %s", path)
	}
	return defs, nil
}
