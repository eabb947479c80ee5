package convertcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aiverse-labs/scene2yolo/internal/report"
	"github.com/aiverse-labs/scene2yolo/internal/scene"
)

func writeScene(t *testing.T, root, name, doc string, images ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create scene dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, scene.DocumentName), []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	for _, image := range images {
		if err := os.WriteFile(filepath.Join(dir, image), []byte("img"), 0644); err != nil {
			t.Fatalf("Failed to write image: %v", err)
		}
	}
}

const sceneDoc = `{
	"images": [{"id": 1, "file_name": "beauty.0001.png", "width": 100, "height": 50}],
	"instances": [{"image_id": 1, "class": "car", "bbox": [10, 10, 60, 40]}]
}`

func TestConvertCommand(t *testing.T) {
	inRoot := t.TempDir()
	outRoot := t.TempDir()
	writeScene(t, inRoot, "sceneA", sceneDoc, "beauty.0001.png")

	indexPath := filepath.Join(outRoot, "annotations.parquet")

	cmd := NewConvertCmd()
	cmd.SetArgs([]string{
		"--in", inRoot,
		"--out", outRoot,
		"--index", indexPath,
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert command failed: %v", err)
	}

	for _, path := range []string{
		filepath.Join(outRoot, "images", "sceneA_beauty.0001.png"),
		filepath.Join(outRoot, "labels", "sceneA_beauty.0001.txt"),
		filepath.Join(outRoot, "data.yaml"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected output %s: %v", path, err)
		}
	}

	rows, err := report.ReadFile(indexPath)
	if err != nil {
		t.Fatalf("Failed to read annotation index: %v", err)
	}
	if len(rows) != 1 || rows[0].Label != "car" {
		t.Errorf("Unexpected index rows: %+v", rows)
	}
}

func TestConvertCommandInvalidLabelField(t *testing.T) {
	inRoot := t.TempDir()
	writeScene(t, inRoot, "sceneA", sceneDoc, "beauty.0001.png")

	cmd := NewConvertCmd()
	cmd.SetArgs([]string{
		"--in", inRoot,
		"--out", t.TempDir(),
		"--label-field", "color",
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for invalid label field, got nil")
	}
}

func TestConvertCommandMissingRoot(t *testing.T) {
	cmd := NewConvertCmd()
	cmd.SetArgs([]string{
		"--in", "/nonexistent/dataset",
		"--out", t.TempDir(),
	})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for missing dataset root, got nil")
	}
}

func TestCleanOutput(t *testing.T) {
	outRoot := t.TempDir()
	for _, sub := range []string{"images", "labels"} {
		if err := os.MkdirAll(filepath.Join(outRoot, sub), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(outRoot, sub, "stale"), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
	for _, name := range []string{"data.yaml", "classes.txt", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(outRoot, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	if err := cleanOutput(outRoot, "data.yaml"); err != nil {
		t.Fatalf("cleanOutput failed: %v", err)
	}

	for _, gone := range []string{"images", "labels", "data.yaml", "classes.txt"} {
		if _, err := os.Stat(filepath.Join(outRoot, gone)); !os.IsNotExist(err) {
			t.Errorf("Expected %s to be removed", gone)
		}
	}
	if _, err := os.Stat(filepath.Join(outRoot, "keep.txt")); err != nil {
		t.Error("Unrelated files must survive --clean")
	}
}

func TestCleanOutputMissingTargets(t *testing.T) {
	if err := cleanOutput(t.TempDir(), "data.yaml"); err != nil {
		t.Errorf("cleanOutput on empty dir failed: %v", err)
	}
}
