package main

import (
	"fmt"
	"io"

	"hms-system/internal/risk"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var levelColors = map[risk.Level]*color.Color{
	risk.LevelLow:      color.New(color.BgGreen, color.FgBlack),
	risk.LevelMedium:   color.New(color.BgYellow, color.FgBlack),
	risk.LevelHigh:     color.New(color.BgHiRed, color.FgBlack),
	risk.LevelCritical: color.New(color.BgRed, color.FgWhite, color.Bold),
}

func (a *app) matrixCommand() *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the 5x5 risk matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := risk.NewMatrix()
			if counts {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				if m, err = store.RiskMatrix(); err != nil {
					return err
				}
			}
			printMatrix(cmd.OutOrStdout(), m, a.labels, counts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&counts, "counts", false, "show the number of open assessments per cell")
	return cmd
}

const nameWidth = 22

func printMatrix(w io.Writer, m risk.Matrix, labels risk.Labels, counts bool) {
	fmt.Fprintf(w, "%-*s", nameWidth, "S \\ K")
	for c := risk.MinScale; c <= risk.MaxScale; c++ {
		fmt.Fprintf(w, " %-12s", fmt.Sprintf("%d %s", c, labels.ConsequenceName(c)))
	}
	fmt.Fprintln(w)

	for _, row := range m.Rows() {
		l := row[0].Likelihood
		fmt.Fprintf(w, "%-*s", nameWidth, fmt.Sprintf("%d %s", l, labels.LikelihoodName(l)))
		for _, cell := range row {
			text := fmt.Sprintf("%2d", cell.Score)
			if counts {
				text = fmt.Sprintf("%2d (%d)", cell.Score, cell.Count)
			}
			fmt.Fprint(w, " ", levelColors[cell.Level].Sprintf(" %-10s ", text))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	for _, lvl := range risk.Levels {
		fmt.Fprint(w, levelColors[lvl].Sprintf(" %s ", lvl.Label()), " ")
	}
	fmt.Fprintln(w)
}
