package convert

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stats accumulates counters for one conversion run.
type Stats struct {
	Scenes           int
	Images           int
	Instances        int
	SkippedInstances int
}

// PrintSummary prints a human-readable summary of the run.
func (s Stats) PrintSummary(outRoot, yamlName string) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("CONVERSION SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Scenes:            %d\n", s.Scenes)
	fmt.Printf("Images:            %d\n", s.Images)
	fmt.Printf("YOLO instances:    %d\n", s.Instances)
	fmt.Printf("Skipped instances: %d\n", s.SkippedInstances)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Images:   %s\n", filepath.Join(outRoot, "images"))
	fmt.Printf("Labels:   %s\n", filepath.Join(outRoot, "labels"))
	fmt.Printf("Manifest: %s\n", filepath.Join(outRoot, yamlName))
	fmt.Println(strings.Repeat("=", 60))
}
