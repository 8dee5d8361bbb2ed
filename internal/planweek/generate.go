package planweek

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/catalog"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

type generateOptions struct {
	csvPath      string
	p, c, f      float64
	allergens    []string
	dietTags     []string
	preset       string
	seed         uint64
	allowRepeats bool
	debug        bool
	workers      int
	out          string
}

func newGenerateCmd(logger func() *slog.Logger) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a weekly plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *uint64
			if cmd.Flags().Changed("seed") {
				seed = &opts.seed
			}
			return runGenerate(cmd, opts, seed, logger())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.csvPath, "csv", "", "ingredient CSV file (default: built-in catalog)")
	f.Float64Var(&opts.p, "P", 0, "daily protein target in grams")
	f.Float64Var(&opts.c, "C", 0, "daily carbohydrate target in grams")
	f.Float64Var(&opts.f, "F", 0, "daily fat target in grams")
	f.StringSliceVar(&opts.allergens, "allergens", nil, "allergens to exclude")
	f.StringSliceVar(&opts.dietTags, "diet", nil, "required diet tags (omnivore disables the filter)")
	f.StringVar(&opts.preset, "preset", planner.DefaultPreset, "search preset: "+strings.Join(planner.PresetNames(), ", "))
	f.Uint64Var(&opts.seed, "seed", 0, "random seed (default: random)")
	f.BoolVar(&opts.allowRepeats, "allow-repeats", false, "allow the same meal twice in a week")
	f.BoolVar(&opts.debug, "debug", false, "include search traces in the JSON output")
	f.IntVar(&opts.workers, "workers", 0, "parallel restarts (default: GOMAXPROCS)")
	f.StringVar(&opts.out, "out", "", "write the plan as JSON to this file")
	_ = cmd.MarkFlagRequired("P")
	_ = cmd.MarkFlagRequired("C")
	_ = cmd.MarkFlagRequired("F")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions, seed *uint64, log *slog.Logger) error {
	ings, err := loadCatalog(opts.csvPath, log)
	if err != nil {
		return err
	}

	plan, err := planner.GenerateWeeklyPlan(cmd.Context(), ings, planner.Targets{P: opts.p, C: opts.c, F: opts.f}, planner.Options{
		Allergens:    opts.allergens,
		DietTags:     opts.dietTags,
		Preset:       opts.preset,
		AllowRepeats: opts.allowRepeats,
		Debug:        opts.debug,
		Seed:         seed,
		Workers:      opts.workers,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), plan)

	if opts.out != "" {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal plan: %w", err)
		}
		if err := os.WriteFile(opts.out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved plan to %s\n", opts.out)
	}
	return nil
}

func loadCatalog(path string, log *slog.Logger) ([]planner.Ingredient, error) {
	if path == "" {
		conv := catalog.NewConverter(log)
		seed := catalog.DefaultSeed()
		out := make([]planner.Ingredient, 0, len(seed))
		for _, row := range seed {
			ing, err := conv.ToPlanner(row)
			if err != nil {
				return nil, err
			}
			out = append(out, ing)
		}
		return out, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer file.Close()
	return catalog.LoadCSV(file, log)
}

func printSummary(w io.Writer, plan *planner.WeeklyPlan) {
	fmt.Fprintf(w, "Weekly plan (preset %s, seed %d)\n", plan.Inputs.Preset, plan.Seed)
	for _, day := range plan.Days {
		t := day.Totals
		fmt.Fprintf(w, "\nDay %d  P %.1f  C %.1f  F %.1f  kcal %.0f  rel_err %.3f  quality %.2f\n",
			day.Day, t.P, t.C, t.F, t.Kcal, day.Info.RelErr, day.Info.Quality)
		for _, slot := range planner.Slots {
			meal := day.Meals.Get(slot)
			fmt.Fprintf(w, "  %-9s %s\n", slot+":", strings.Join(meal.Names, ", "))
		}
	}
	wt := plan.WeeklyTotals
	fmt.Fprintf(w, "\nWeek  P %.1f  C %.1f  F %.1f  kcal %.0f  price %.2f\n", wt.P, wt.C, wt.F, wt.Kcal, wt.Price)
}
