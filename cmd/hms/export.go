package main

import (
	"bytes"
	"os"

	"hms-system/internal/database"
	"hms-system/internal/report"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"
)

func (a *app) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export risks|incidents",
		Short:     "Write a PDF report",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"risks", "incidents"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var buf bytes.Buffer
			pages, count, err := a.export(store, args[0], &buf)
			if err != nil {
				return err
			}

			if output == "" {
				output = args[0] + ".pdf"
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
			}
			a.log.Info("report written", "path", output, "items", count, "pages", pages)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <kind>.pdf)")
	return cmd
}

func (a *app) export(store *database.Store, kind string, buf *bytes.Buffer) (pages, count int, err error) {
	gen := report.NewGenerator(a.labels)

	switch kind {
	case "risks":
		items, err := store.ListRiskAssessments(database.RiskFilter{})
		if err != nil {
			return 0, 0, err
		}
		pages, err = gen.RiskAssessments(buf, items)
		return pages, len(items), err
	case "incidents":
		items, err := store.ListIncidents(database.IncidentFilter{})
		if err != nil {
			return 0, 0, err
		}
		pages, err = gen.Incidents(buf, items)
		return pages, len(items), err
	}
	return 0, 0, goerr.New("unknown report kind", goerr.V("kind", kind))
}
