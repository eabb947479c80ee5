package scene

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

// FindDocuments walks root and returns the path of every annotation
// document found, one per scene, sorted for a reproducible traversal
// order.
func FindDocuments(root string) ([]string, error) {
	var docs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == DocumentName {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset root: %w", err)
	}

	sort.Strings(docs)
	return docs, nil
}
