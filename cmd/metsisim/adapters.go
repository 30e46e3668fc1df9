package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukefi/metsi-go/config"
)

// newPreprocessCmd, newExportCmd and newPostprocessCmd round out the
// run-mode surface §6 enumerates (preprocess, export-prepro, simulate,
// postprocess, export). spec.md §1 scopes the preprocessing pipeline and
// the export/post-processing stages out as external, thin adapters; these
// subcommands validate that the control file parses and that the stage is
// one of its declared run_modes, then report the stage as handled by an
// external adapter rather than by the simulation core.

func newPreprocessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess",
		Short: "Run the preprocessing pipeline declared in the control file",
		RunE:  runExternalStage("preprocess"),
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Run the export stage declared in the control file",
		RunE:  runExternalStage("export"),
	}
}

func newPostprocessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "postprocess",
		Short: "Run the post-processing stage declared in the control file",
		RunE:  runExternalStage("postprocess"),
	}
}

func runExternalStage(stage string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		controlFile, err := cmd.Flags().GetString("control-file")
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(controlFile)
		if err != nil {
			return err
		}
		if !containsRunMode(cfg.AppConfiguration.RunModes, stage) {
			fmt.Printf("%s: not declared in run_modes, nothing to do\n", stage)
			return nil
		}
		fmt.Printf("%s: delegated to an external adapter, not implemented by this core\n", stage)
		return nil
	}
}

func containsRunMode(modes []string, stage string) bool {
	for _, m := range modes {
		if m == stage {
			return true
		}
	}
	return false
}
