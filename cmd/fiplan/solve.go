package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/breakeven"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Find the break-even value of a parameter for a goal deadline",
		Long: `Search for the value of one parameter that reaches the retirement goal
no later than a given year or age.

Examples:
  fiplan solve plan.yaml --target initial_capital --goal-year 2040
  fiplan solve plan.yaml --target spending_scale --goal-age 55
  fiplan solve plan.yaml --target all --goal-year 2040 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	names := make([]string, 0, len(breakeven.AllTargets))
	for _, t := range breakeven.AllTargets {
		names = append(names, string(t))
	}
	cmd.Flags().String("target", "all", "Parameter to solve for ("+strings.Join(names, ", ")+", all)")
	cmd.Flags().Int("goal-year", 0, "Latest year the goal must be reached")
	cmd.Flags().Int("goal-age", 0, "Latest age the goal must be reached")
	cmd.Flags().String("min", "", "Lower search bound")
	cmd.Flags().String("max", "", "Upper search bound")
	cmd.Flags().Int("max-iterations", 0, "Maximum bisection steps (default 60)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	constraints, err := constraintsFromFlags(cmd)
	if err != nil {
		return err
	}

	solver := breakeven.NewDefaultSolver(newEngine(cmd))
	tableFormatter := &breakeven.TableFormatter{Currency: cfg.DisplayCurrency()}
	jsonFormatter := &breakeven.JSONFormatter{Pretty: true}
	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}

	target, _ := cmd.Flags().GetString("target")
	if target == "all" {
		if constraints.Min != nil || constraints.Max != nil {
			return fmt.Errorf("--min and --max need a single --target")
		}
		result, err := solver.OptimizeMultiDimensional(cmd.Context(), cfg, constraints, nil)
		if err != nil {
			return err
		}
		if format == "json" {
			text, err := jsonFormatter.FormatMultiDimensional(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), tableFormatter.FormatMultiDimensional(result))
		return nil
	}

	maxIterations, _ := cmd.Flags().GetInt("max-iterations")
	result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
		Config:        cfg,
		Target:        breakeven.OptimizationTarget(target),
		Constraints:   constraints,
		MaxIterations: maxIterations,
	})
	if err != nil {
		return err
	}
	if format == "json" {
		text, err := jsonFormatter.Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), tableFormatter.Format(result))
	return nil
}

func constraintsFromFlags(cmd *cobra.Command) (breakeven.Constraints, error) {
	var c breakeven.Constraints
	flags := cmd.Flags()
	if flags.Changed("goal-year") {
		v, _ := flags.GetInt("goal-year")
		c.GoalYear = domain.IntPtr(v)
	}
	if flags.Changed("goal-age") {
		v, _ := flags.GetInt("goal-age")
		c.GoalAge = domain.IntPtr(v)
	}
	for _, bound := range []struct {
		flag string
		dst  **decimal.Decimal
	}{{"min", &c.Min}, {"max", &c.Max}} {
		s, _ := flags.GetString(bound.flag)
		if s == "" {
			continue
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			return c, fmt.Errorf("invalid --%s %q: %w", bound.flag, s, err)
		}
		*bound.dst = &v
	}
	return c, nil
}
