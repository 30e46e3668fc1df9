package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lukefi/metsi-go/config"
	"github.com/lukefi/metsi-go/persistence"
	"github.com/lukefi/metsi-go/simulator"
	"github.com/lukefi/metsi-go/stand"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Build the event tree from the control file and run it over every stand",
		RunE:  runSimulate,
	}
	cmd.Flags().Int("concurrency", 1, "number of stands to evaluate concurrently (1 = sequential)")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	controlFile, err := cmd.Flags().GetString("control-file")
	if err != nil {
		return errors.WithStack(err)
	}
	standsOverride, err := cmd.Flags().GetString("stands-file")
	if err != nil {
		return errors.WithStack(err)
	}
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return errors.WithStack(err)
	}

	cfg, err := config.LoadConfig(controlFile)
	if err != nil {
		return err
	}
	if standsOverride != "" {
		cfg.StandsFile = standsOverride
	}
	if cfg.StandsFile == "" {
		return errors.New("config: stands_file is required to run simulate")
	}

	registry := config.DefaultRegistry()
	instructions, err := config.CompileInstructions(cfg, registry)
	if err != nil {
		return err
	}

	units, err := config.LoadStands(cfg.StandsFile)
	if err != nil {
		return err
	}

	sink, err := openSink(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	zlog, err := zap.NewProduction()
	if err != nil {
		return errors.WithStack(err)
	}
	defer zlog.Sync() //nolint:errcheck

	driver, err := simulator.NewDriver(instructions, sink, zlog.Sugar())
	if err != nil {
		return errors.WithStack(err)
	}

	var results map[string][]*stand.Payload
	if concurrency > 1 {
		results, err = driver.RunAllParallel(cmd.Context(), units, concurrency)
	} else {
		results, err = driver.RunAll(units)
	}
	if err != nil {
		return err
	}

	for _, unit := range units {
		fmt.Printf("%s: %d alternatives\n", unit.Identifier, len(results[unit.Identifier]))
	}
	return nil
}

func openSink(cfg *config.Config) (persistence.Sink, error) {
	path := cfg.PersistencePath
	if path == "" {
		path = "metsi-output.db"
	}
	if cfg.PersistenceBackend == "sqlite" {
		return persistence.OpenSQLiteSink(path)
	}
	return persistence.OpenBoltSink(path)
}
