package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/rgehrsitz/fiplan/internal/transform"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project a configuration year by year",
		Long: `Project a configuration and print one row per year.

Examples:
  fiplan project plan.yaml
  fiplan project plan.yaml --format csv --years 40
  fiplan project plan.yaml --template bear_market
  fiplan project plan.yaml --transform set_returns:rate=5 --transform scale_spendings:factor=0.9
  fiplan project plan.yaml --query '$.summary.goalYear'`,
		Args: cobra.ExactArgs(1),
		RunE: runProject,
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().IntP("years", "y", calculation.RowsToShow, "Number of years to project")
	cmd.Flags().String("query", "", "JSONPath evaluated over the JSON projection instead of a report")
	cmd.Flags().String("template", "", "Apply a built-in scenario template before projecting")
	cmd.Flags().StringSlice("transform", nil, "Apply a transform (format: name:key=value,...)")
	cmd.Flags().String("output", "", "Write the report into this directory instead of stdout")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	if name, _ := cmd.Flags().GetString("template"); name != "" {
		tmpl, ok := transform.CreateBuiltInTemplates().Get(name)
		if !ok {
			return fmt.Errorf("template %s not found (use 'fiplan compare --list-templates')", name)
		}
		if cfg, err = transform.ApplyTemplate(cfg, tmpl); err != nil {
			return err
		}
	}
	if specs, _ := cmd.Flags().GetStringSlice("transform"); len(specs) > 0 {
		transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
		if err != nil {
			return err
		}
		if cfg, err = transform.ApplyTransforms(cfg, transforms); err != nil {
			return err
		}
	}

	years, _ := cmd.Flags().GetInt("years")
	projection, err := newEngine(cmd).Project(cmd.Context(), cfg, years)
	if err != nil {
		return err
	}
	printDiagnostics(cmd.ErrOrStderr(), projection.Diagnostics)

	if path, _ := cmd.Flags().GetString("query"); path != "" {
		value, err := output.Query(projection, path)
		if err != nil {
			return err
		}
		data, err := output.FormatQueryResult(value)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path, err := output.WriteFormatted(formatter, projection, dir, reportExtension(formatter.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := formatter.Format(projection)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// reportExtension maps a formatter name to a file extension
func reportExtension(name string) string {
	switch name {
	case "console", "pretty":
		return "txt"
	case "markdown":
		return "md"
	default:
		return name
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}

			_, _, diagnostics := calculation.ValidateCashFlows(cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			printDiagnostics(cmd.OutOrStdout(), diagnostics)

			if strict, _ := cmd.Flags().GetBool("strict"); strict && len(diagnostics) > 0 {
				return fmt.Errorf("%d cash flow(s) are invalid", len(diagnostics))
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Fail when any cash flow would be ignored")
	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [output-file]",
		Short: "Write a starter configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			cfg := config.NewDefaults().DefaultConfiguration()
			config.NewCashFlowEditor(cfg).AssignIDs()
			if err := config.NewWriter().SaveToFile(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
