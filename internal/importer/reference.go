package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Reference is one row of the external bead palette. The file is read-only
// input; it is never written back.
type Reference struct {
	Name      string `yaml:"name"`
	Color     string `yaml:"color"`
	Count     int    `yaml:"count"`
	Threshold int    `yaml:"threshold"`
}

// LoadReference reads the palette file.
func LoadReference(path string) ([]Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference palette: %w", err)
	}
	var refs []Reference
	if err := yaml.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("parse reference palette: %w", err)
	}
	return refs, nil
}
