package yolo

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the Ultralytics dataset config written next to the converted
// data. No split is performed, so train and val both point at the image
// directory.
type Manifest struct {
	Path  string         `yaml:"path"`
	Train string         `yaml:"train"`
	Val   string         `yaml:"val"`
	Names map[int]string `yaml:"names"`
}

// NewManifest builds the manifest for an output root and the registry's
// final label list.
func NewManifest(outRoot string, labels []string) Manifest {
	root := outRoot
	if abs, err := filepath.Abs(outRoot); err == nil {
		root = abs
	}

	names := make(map[int]string, len(labels))
	for id, label := range labels {
		names[id] = label
	}

	return Manifest{
		Path:  filepath.ToSlash(root),
		Train: "images",
		Val:   "images",
		Names: names,
	}
}

// WriteManifest emits the dataset manifest into outRoot under yamlName.
func WriteManifest(outRoot, yamlName string, labels []string) error {
	manifest := NewManifest(outRoot, labels)

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(outRoot, yamlName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
