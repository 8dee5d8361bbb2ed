// Package planweek implements the planweek command line tool.
package planweek

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "planweek",
		Short: "Generate weekly meal plans from an ingredient catalog",
		Long: `planweek composes a seven-day plan of breakfast, lunch and dinner that
tracks daily protein, carbohydrate and fat targets.

Example usage:
  planweek generate --P 150 --C 250 --F 60
  planweek generate --csv ingredients.csv --P 150 --C 250 --F 60 --allergens gluten,dairy --seed 42 --out plan.json
  planweek presets`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	root.AddCommand(newGenerateCmd(logger))
	root.AddCommand(newPresetsCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List search presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range planner.PresetNames() {
				p, err := planner.LookupPreset(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == planner.DefaultPreset {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %4d restarts per slot%s\n", p.Name, p.Restarts, marker)
			}
			return nil
		},
	}
}
