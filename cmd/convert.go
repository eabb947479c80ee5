package cmd

import (
	"github.com/aiverse-labs/scene2yolo/internal/convertcmd"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	return convertcmd.NewConvertCmd()
}
