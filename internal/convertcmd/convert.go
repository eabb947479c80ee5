// Package convertcmd wires the convert subcommand: flag parsing, logging
// setup, output cleanup, and the conversion run itself.
package convertcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aiverse-labs/scene2yolo/internal/convert"
	"github.com/aiverse-labs/scene2yolo/internal/imagemeta"
	"github.com/aiverse-labs/scene2yolo/internal/report"
	"github.com/aiverse-labs/scene2yolo/internal/yolo"
	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	var inDir string
	var outDir string
	var labelField string
	var imageKey string
	var extensions []string
	var strict bool
	var yamlName string
	var clean bool
	var indexPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert scene annotation documents to YOLO images, labels, and data.yaml",
		Long: `Convert walks the dataset root for scene directories (each holding a
scene_instances.json), copies their images into <out>/images/, writes one
normalized label file per image into <out>/labels/, and emits an
Ultralytics data.yaml mapping class ids to names.

Class ids are assigned in first-seen order across the whole dataset, so the
same input always produces the same id->name mapping. Structural failures
(unreadable documents, missing images, unreadable dimensions) are logged
and skipped unless --strict is set; per-instance data defects are always
tolerated and only surface in the skipped-instances count.`,
		Example: `  # Convert a dataset using the instances' class field
  scene2yolo convert --in ./renders --out ./yolo

  # Combine class and subclass into the label, fail on structural problems
  scene2yolo convert --in ./renders --out ./yolo --label-field class_subclass --strict

  # Wipe previous output and also write a parquet annotation index
  scene2yolo convert --in ./renders --out ./yolo --clean --index ./yolo/annotations.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			// Env fallbacks for per-dataset settings
			if labelField == "" {
				labelField = os.Getenv("SCENE2YOLO_LABEL_FIELD")
				if labelField == "" {
					labelField = "class"
				}
			}
			if imageKey == "" {
				imageKey = os.Getenv("SCENE2YOLO_IMAGE_KEY")
				if imageKey == "" {
					imageKey = "file_name"
				}
			}

			mode, err := yolo.ParseLabelMode(labelField)
			if err != nil {
				return err
			}

			info, err := os.Stat(inDir)
			if err != nil {
				return fmt.Errorf("dataset root not found: %s", inDir)
			}
			if !info.IsDir() {
				return fmt.Errorf("dataset root is not a directory: %s", inDir)
			}

			opts := convert.Options{
				LabelField: mode,
				ImageKey:   imageKey,
				Extensions: extensions,
				Strict:     strict,
				YAMLName:   yamlName,
			}
			return executeConvert(inDir, outDir, opts, clean, indexPath)
		},
	}

	cmd.Flags().StringVar(&inDir, "in", "", "Dataset root containing scene folders (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory; images/ and labels/ are created inside (required)")
	cmd.Flags().StringVar(&labelField, "label-field", "", "Field(s) to use for class names: class, subclass, superclass, path, class_subclass (default class)")
	cmd.Flags().StringVar(&imageKey, "image-key", "", "Key in images[] holding the filename (default file_name)")
	cmd.Flags().StringSliceVar(&extensions, "image-extensions", []string{".png", ".jpg", ".jpeg"}, "Allowed image extensions, in resolution priority order")
	cmd.Flags().BoolVar(&strict, "strict", false, "Error on unreadable documents, missing images, or unreadable dimensions instead of skipping")
	cmd.Flags().StringVar(&yamlName, "yaml-name", "data.yaml", "Name of the generated dataset YAML file")
	cmd.Flags().BoolVar(&clean, "clean", false, "Delete out/images, out/labels, the dataset YAML, and classes.txt before converting")
	cmd.Flags().StringVar(&indexPath, "index", "", "Optional path for a parquet annotation index of all emitted labels")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func executeConvert(inDir, outDir string, opts convert.Options, clean bool, indexPath string) error {
	slog.Info("Starting conversion", "in", inDir, "out", outDir, "label_field", string(opts.LabelField), "strict", opts.Strict)

	if clean {
		if err := cleanOutput(outDir, opts.YAMLName); err != nil {
			return err
		}
	}

	var index *report.Index
	if indexPath != "" {
		index = report.NewIndex()
		opts.Index = index
	}

	converter := convert.New(outDir, imagemeta.FileReader{}, opts)
	if err := converter.Run(inDir); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if index != nil {
		if err := index.WriteFile(indexPath); err != nil {
			return err
		}
		slog.Info("Wrote annotation index", "path", indexPath, "rows", index.Len())
	}

	converter.Stats().PrintSummary(outDir, opts.YAMLName)

	return nil
}

// cleanOutput removes any output of a previous run so the conversion
// starts from a blank slate.
func cleanOutput(outRoot, yamlName string) error {
	for _, sub := range []string{"images", "labels"} {
		dir := filepath.Join(outRoot, sub)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}
	for _, name := range []string{"classes.txt", yamlName} {
		path := filepath.Join(outRoot, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clean %s: %w", path, err)
		}
	}
	return nil
}
