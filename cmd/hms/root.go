package main

import (
	"log/slog"
	"os"

	"hms-system/internal/config"
	"hms-system/internal/database"
	"hms-system/internal/logging"
	"hms-system/internal/risk"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs after PersistentPreRunE.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	labels risk.Labels
}

func rootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "hms",
		Short:         "HMS compliance: risk assessments and incident reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	serveCmd := a.serveCommand()
	rootCmd.AddCommand(
		serveCmd,
		a.migrateCommand(),
		a.matrixCommand(),
		a.exportCommand(),
	)

	// bare "hms" starts the server
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	labels, err := config.LoadLabels(cfg.MatrixLabelsPath)
	if err != nil {
		return err
	}
	if cfg.MatrixLabelsPath != "" {
		log.Info("loaded matrix labels", "path", cfg.MatrixLabelsPath)
	}

	a.cfg = cfg
	a.log = log
	a.labels = labels
	return nil
}

func (a *app) openStore() (*database.Store, error) {
	store, err := database.Open(a.cfg.DBDriver, a.cfg.DBDSN, a.log)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("driver", a.cfg.DBDriver))
	}
	return store, nil
}
