package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSuite decodes and validates a YAML suite definition.
func ParseSuite(data []byte) (Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return Suite{}, fmt.Errorf("harness: parse suite: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return Suite{}, err
	}
	return suite, nil
}

// LoadSuite reads a suite definition from a YAML file.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("harness: load suite: %w", err)
	}
	return ParseSuite(data)
}
