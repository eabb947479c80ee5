package scene

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveImagePath locates the image file for one image record.
//
// Resolution order: the declared filename relative to the scene directory,
// then just its basename, then the first file in the scene directory
// matching each allowed extension in priority order. Within one extension,
// filenames starting with "beauty." win; candidates are taken in sorted
// order so repeated runs pick the same file.
func ResolveImagePath(sceneDir, declared string, extensions []string) (string, bool) {
	if declared != "" {
		path := filepath.Join(sceneDir, filepath.FromSlash(declared))
		if fileExists(path) {
			return path, true
		}
		path = filepath.Join(sceneDir, filepath.Base(filepath.FromSlash(declared)))
		if fileExists(path) {
			return path, true
		}
	}

	entries, err := os.ReadDir(sceneDir)
	if err != nil {
		return "", false
	}

	for _, ext := range extensions {
		var candidates []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasSuffix(entry.Name(), ext) {
				candidates = append(candidates, entry.Name())
			}
		}
		if len(candidates) == 0 {
			continue
		}
		// os.ReadDir returns entries sorted by filename
		for _, name := range candidates {
			if strings.HasPrefix(name, "beauty.") {
				return filepath.Join(sceneDir, name), true
			}
		}
		return filepath.Join(sceneDir, candidates[0]), true
	}

	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
