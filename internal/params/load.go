package params

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var errMissingDefault = errors.New("parameter table has no default entry")

// Load reads a parameter table from a YAML file. The document is a mapping
// from language code to a full FilterConfig; a "default" entry is required.
// Entries replace the built-in table wholesale, they are not merged with it.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter table: %w", err)
	}

	var configs map[string]FilterConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parsing parameter table %s: %w", path, err)
	}

	t, err := New(configs)
	if err != nil {
		return nil, fmt.Errorf("parameter table %s: %w", path, err)
	}
	return t, nil
}
