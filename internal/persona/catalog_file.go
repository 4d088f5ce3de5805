package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile mirrors the on-disk personas.yaml shape.
type catalogFile struct {
	Experts       []Persona      `yaml:"experts"`
	Organizations []Organization `yaml:"organizations"`
}

// LoadCatalog reads a YAML catalog file and builds a registry from it.
// The file replaces the built-in catalog entirely.
func LoadCatalog(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	reg, err := NewRegistry(cf.Experts, cf.Organizations)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return reg, nil
}

// LoadOrBuiltin loads the catalog file when a path is configured and the
// file exists, otherwise falls back to the built-in catalog.
func LoadOrBuiltin(path string) (*Registry, error) {
	if path == "" {
		return BuiltinRegistry(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return BuiltinRegistry(), nil
	}
	return LoadCatalog(path)
}
