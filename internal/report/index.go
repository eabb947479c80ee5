// Package report exports an optional per-run annotation index so users can
// audit class balance without re-parsing label files.
package report

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Annotation is one emitted label line.
type Annotation struct {
	Scene   string  `parquet:"scene"`
	Image   string  `parquet:"image"`
	Label   string  `parquet:"label"`
	ClassID int32   `parquet:"class_id"`
	XCenter float64 `parquet:"x_center"`
	YCenter float64 `parquet:"y_center"`
	Width   float64 `parquet:"width"`
	Height  float64 `parquet:"height"`
}

// Index accumulates annotations during a conversion run.
type Index struct {
	rows []Annotation
}

// NewIndex creates an empty annotation index.
func NewIndex() *Index {
	return &Index{}
}

// Add appends one annotation to the index.
func (i *Index) Add(a Annotation) {
	i.rows = append(i.rows, a)
}

// Len reports the number of collected annotations.
func (i *Index) Len() int {
	return len(i.rows)
}

// WriteFile writes the collected annotations to a Parquet file.
func (i *Index) WriteFile(path string) error {
	slog.Debug("Writing annotation index", "path", path, "rows", len(i.rows))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Annotation](file)
	if len(i.rows) > 0 {
		if _, err := writer.Write(i.rows); err != nil {
			return fmt.Errorf("failed to write index rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize index file: %w", err)
	}

	return nil
}

// ReadFile loads an annotation index back from a Parquet file.
func ReadFile(path string) ([]Annotation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Annotation](pf)
	defer reader.Close()

	var rows []Annotation
	batch := make([]Annotation, 128)
	for {
		n, err := reader.Read(batch)
		if n > 0 {
			rows = append(rows, batch[:n]...)
		}
		if err != nil {
			break
		}
	}

	return rows, nil
}
