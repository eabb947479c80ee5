package yolo

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestWriteManifest(t *testing.T) {
	tmpDir := t.TempDir()

	if err := WriteManifest(tmpDir, "data.yaml", []string{"car", "person"}); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "data.yaml"))
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	if manifest.Train != "images" || manifest.Val != "images" {
		t.Errorf("Expected train and val to point at images, got %q / %q", manifest.Train, manifest.Val)
	}
	if manifest.Path == "" {
		t.Error("Expected a non-empty dataset path")
	}
	if len(manifest.Names) != 2 {
		t.Fatalf("Expected 2 names, got %d", len(manifest.Names))
	}
	if manifest.Names[0] != "car" || manifest.Names[1] != "person" {
		t.Errorf("Unexpected names mapping: %v", manifest.Names)
	}
}

func TestWriteManifestEmptyRegistry(t *testing.T) {
	tmpDir := t.TempDir()

	if err := WriteManifest(tmpDir, "custom.yaml", nil); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "custom.yaml"))
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}
	if len(manifest.Names) != 0 {
		t.Errorf("Expected empty names mapping, got %v", manifest.Names)
	}
}
