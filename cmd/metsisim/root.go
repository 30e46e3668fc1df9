// Package main is the metsisim CLI (§6): a cobra command tree over the
// simulation core, driven by a control file the config package loads and
// compiles into an event tree.
package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "metsisim",
		Short:         "Run the forest-management event-tree scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("control-file", "control.yaml", "path to the control file")
	root.PersistentFlags().String("stands-file", "", "path to the stand list, overriding the control file's stands_file")

	root.AddCommand(newSimulateCmd())
	root.AddCommand(newPreprocessCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newPostprocessCmd())
	return root
}
