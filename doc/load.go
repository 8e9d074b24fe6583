package doc

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/logger"
)

// Load reads and parses a universal prompt document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read document %s", path)
	}
	return Parse(data, path)
}

// Parse unmarshals document YAML. name is used in error messages only.
func Parse(data []byte, name string) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, "failed to parse document %s", name)
	}
	checkVersion(&d, name)
	return &d, nil
}

// checkVersion warns when metadata.version is present but not valid
// semver. Malformed versions are not fatal: the field is opaque to the
// pipeline and only renderers care about it.
func checkVersion(d *Document, name string) {
	if d.Metadata.Version == "" {
		return
	}
	if _, err := semver.NewVersion(d.Metadata.Version); err != nil {
		logger.Logger.Warnw("document version is not valid semver",
			"document", name,
			"version", d.Metadata.Version,
		)
	}
}

// Marshal renders the document back to YAML, used by the CLI to print
// resolved output.
func Marshal(d *Document) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal document")
	}
	return data, nil
}
