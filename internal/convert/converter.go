// Package convert implements the scene-to-YOLO conversion pipeline: scene
// discovery, per-scene processing, and final manifest emission.
package convert

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiverse-labs/scene2yolo/internal/imagemeta"
	"github.com/aiverse-labs/scene2yolo/internal/report"
	"github.com/aiverse-labs/scene2yolo/internal/scene"
	"github.com/aiverse-labs/scene2yolo/internal/yolo"
)

// Options configure a conversion run.
type Options struct {
	LabelField yolo.LabelMode
	ImageKey   string        // images[] field holding the declared filename
	Extensions []string      // image extension fallback order, highest priority first
	Strict     bool          // escalate structural failures instead of logging and skipping
	YAMLName   string        // manifest filename inside the output root
	Index      *report.Index // optional annotation index, nil disables collection
}

// Converter walks scene directories and writes the YOLO dataset. It is
// single-threaded on purpose: class ids must be assigned in a fixed
// traversal order to stay reproducible across runs.
type Converter struct {
	outRoot  string
	opts     Options
	dims     imagemeta.Reader
	registry *yolo.Registry
	stats    Stats
}

// New creates a converter writing into outRoot. dims is consulted only for
// images whose annotation entries omit width or height.
func New(outRoot string, dims imagemeta.Reader, opts Options) *Converter {
	return &Converter{
		outRoot:  outRoot,
		opts:     opts,
		dims:     dims,
		registry: yolo.NewRegistry(),
	}
}

// Stats returns the accumulated run statistics.
func (c *Converter) Stats() Stats {
	return c.stats
}

// Labels returns the class labels registered so far, in id order.
func (c *Converter) Labels() []string {
	return c.registry.Labels()
}

// Run discovers every scene under inRoot, processes them in sorted order,
// and emits the manifest from the final registry state. The manifest is
// written exactly once, after the full traversal, so that class ids are
// stable dataset-wide.
func (c *Converter) Run(inRoot string) error {
	for _, sub := range []string{"images", "labels"} {
		if err := os.MkdirAll(filepath.Join(c.outRoot, sub), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	docs, err := scene.FindDocuments(inRoot)
	if err != nil {
		return err
	}
	slog.Info("Discovered scenes", "count", len(docs), "root", inRoot)

	for _, docPath := range docs {
		c.stats.Scenes++
		if err := c.processScene(docPath); err != nil {
			return err
		}
	}

	if err := yolo.WriteManifest(c.outRoot, c.opts.YAMLName, c.registry.Labels()); err != nil {
		return err
	}

	return nil
}

// processScene converts one scene. It returns an error only for strict-mode
// structural failures and for output I/O failures; tolerated failures are
// logged and skipped.
func (c *Converter) processScene(docPath string) error {
	sceneDir := filepath.Dir(docPath)
	slog.Debug("Processing scene", "scene", filepath.Base(sceneDir))

	doc, err := scene.Load(docPath)
	if err != nil {
		if c.opts.Strict {
			return fmt.Errorf("scene %s: %w", sceneDir, err)
		}
		slog.Warn("Failed to read annotation document, skipping scene", "path", docPath, "error", err)
		return nil
	}

	records := doc.ImageRecords(c.opts.ImageKey)

	known := make(map[string]bool, len(records))
	for _, rec := range records {
		known[rec.Key] = true
	}

	// Instances referencing an unknown image id are orphaned and never
	// processed.
	byImage := make(map[string][]map[string]any)
	for _, inst := range doc.Instances {
		key := scene.IDKey(inst["image_id"])
		if !known[key] {
			c.stats.SkippedInstances++
			continue
		}
		byImage[key] = append(byImage[key], inst)
	}

	for _, rec := range records {
		if err := c.processImage(sceneDir, rec, byImage[rec.Key]); err != nil {
			return err
		}
	}

	return nil
}

// processImage resolves, copies, and labels a single image record.
func (c *Converter) processImage(sceneDir string, rec scene.ImageRecord, instances []map[string]any) error {
	src, ok := scene.ResolveImagePath(sceneDir, rec.FileName, c.opts.Extensions)
	if !ok {
		if c.opts.Strict {
			return fmt.Errorf("no image file found for id %q (declared %q) in %s", rec.Key, rec.FileName, sceneDir)
		}
		slog.Warn("Missing image, skipping", "image_id", rec.Key, "declared", rec.FileName, "scene", sceneDir)
		return nil
	}

	sceneName := filepath.Base(sceneDir)
	outName := sceneName + "_" + filepath.Base(src)
	outImage := filepath.Join(c.outRoot, "images", outName)
	stem := strings.TrimSuffix(outName, filepath.Ext(outName))
	outLabel := filepath.Join(c.outRoot, "labels", stem+".txt")

	if _, err := os.Stat(outImage); err == nil {
		slog.Debug("Output image already exists, skipping copy", "path", outImage)
	} else {
		if err := copyFile(src, outImage); err != nil {
			return err
		}
	}

	width, height, haveSize := rec.Width, rec.Height, rec.HasSize

	var lines []string
	for _, inst := range instances {
		label, ok := yolo.LabelFor(inst, c.opts.LabelField)
		if !ok {
			c.stats.SkippedInstances++
			continue
		}

		box, ok := scene.BBoxField(inst)
		if !ok {
			c.stats.SkippedInstances++
			continue
		}

		if !haveSize {
			w, h, err := c.dims.Dimensions(src)
			if err != nil {
				if c.opts.Strict {
					return fmt.Errorf("failed to read dimensions of %s: %w", src, err)
				}
				slog.Warn("Width/height undeclared and image header unreadable, skipping instance", "image", src, "error", err)
				continue
			}
			width, height, haveSize = float64(w), float64(h), true
		}

		normalized, ok := yolo.Normalize(box[0], box[1], box[2], box[3], width, height)
		if !ok {
			c.stats.SkippedInstances++
			continue
		}

		id := c.registry.IDFor(label)
		lines = append(lines, fmt.Sprintf("%d %.6f %.6f %.6f %.6f",
			id, normalized.XCenter, normalized.YCenter, normalized.Width, normalized.Height))

		if c.opts.Index != nil {
			c.opts.Index.Add(report.Annotation{
				Scene:   sceneName,
				Image:   outName,
				Label:   label,
				ClassID: int32(id),
				XCenter: normalized.XCenter,
				YCenter: normalized.YCenter,
				Width:   normalized.Width,
				Height:  normalized.Height,
			})
		}
	}

	// An image with zero valid instances still gets an empty label file;
	// YOLO tooling expects one per image.
	if err := os.WriteFile(outLabel, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write label file: %w", err)
	}

	c.stats.Images++
	c.stats.Instances += len(lines)

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source image: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create output image: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy image: %w", err)
	}

	return out.Close()
}
