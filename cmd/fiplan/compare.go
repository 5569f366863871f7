package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/compare"
	"github.com/rgehrsitz/fiplan/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a configuration against scenario templates and transforms",
		Long: `Compare a base configuration against alternative scenarios.

Examples:
  fiplan compare plan.yaml --with bear_market,frugal
  fiplan compare plan.yaml --transform set_returns:value=4 --format csv
  fiplan compare --list-templates  # Show all available templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}

	cmd.Flags().String("base", "base", "Label of the unmodified configuration")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringSlice("transform", nil, "Transform spec compared as its own scenario (format: name:key=value,...)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().IntP("years", "y", calculation.RowsToShow, "Number of years to project")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
	}

	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	baseName, _ := cmd.Flags().GetString("base")
	templatesStr, _ := cmd.Flags().GetString("with")
	specs, _ := cmd.Flags().GetStringSlice("transform")
	templateNames := transform.ParseTemplateList(templatesStr)
	if len(templateNames) == 0 && len(specs) == 0 {
		return fmt.Errorf("--with or --transform is required to specify scenarios to compare")
	}

	engine := compare.NewCompareEngine(newEngine(cmd))
	engine.Horizon, _ = cmd.Flags().GetInt("years")

	comparisonSet, err := engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
		BaseScenarioName: baseName,
		Templates:        templateNames,
		Transforms:       specs,
		ConfigPath:       args[0],
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "csv":
		text, err := (&compare.CSVFormatter{}).Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, text)
	case "json":
		text, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, text)
	case "compact":
		fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))
	case "table", "console", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
	return nil
}
