package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene2yolo",
		Short: "Convert scene-based detection datasets to the YOLO training layout",
		Long: `scene2yolo converts per-scene annotation documents into YOLO training data.

Each scene directory holds a scene_instances.json describing its images and
annotated instances. The converter copies every image into a flat images/
directory, writes one normalized label file per image into labels/, and emits
an Ultralytics-style data.yaml mapping class ids to class names.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newConvertCmd())

	return cmd
}
