package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep parameters and report how the goal year moves",
		Long: `Perform sensitivity analysis to test how robust a plan is to parameter changes.

Examples:
  # Single parameter sweep
  fiplan sensitivity plan.yaml --parameter avg_yearly_returns --range 2-10 --steps 5

  # Multiple parameter sweep
  fiplan sensitivity plan.yaml --parameter avg_yearly_returns:2-10:5 --parameter withdrawal_rate:3-5:5

  # Matrix analysis
  fiplan sensitivity plan.yaml --parameter avg_yearly_returns:2-10:5 --parameter spending_scale:0.8-1.2:5 --analysis-type matrix

  # Use the predefined parameter set
  fiplan sensitivity plan.yaml --parameter-set common`,
		Args: cobra.ExactArgs(1),
		RunE: runSensitivityAnalysis,
	}

	cmd.Flags().StringSlice("parameter", nil, "Parameter to analyze (format: name:min-max:steps, or a name with --range)")
	cmd.Flags().String("range", "", "Range for single parameter analysis (format: min-max)")
	cmd.Flags().Int("steps", 5, "Number of steps for parameter sweep")
	cmd.Flags().String("output", "table", "Output format (table, csv, json)")
	cmd.Flags().String("parameter-set", "", "Use predefined parameter set (common)")
	cmd.Flags().String("analysis-type", "single", "Analysis type (single, multi, matrix)")
	cmd.Flags().IntP("years", "y", calculation.RowsToShow, "Number of years to project")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	paramStrings, _ := flags.GetStringSlice("parameter")
	rangeStr, _ := flags.GetString("range")
	steps, _ := flags.GetInt("steps")
	setName, _ := flags.GetString("parameter-set")
	analysisType, _ := flags.GetString("analysis-type")

	var parameters []domain.SensitivityParameter
	switch {
	case setName != "":
		if parameters, err = getPredefinedParameterSet(setName); err != nil {
			return err
		}
	case rangeStr != "":
		if len(paramStrings) != 1 {
			return fmt.Errorf("--range needs exactly one --parameter name")
		}
		param, err := parseSingleParameter(paramStrings[0], rangeStr, steps)
		if err != nil {
			return fmt.Errorf("error parsing parameter: %w", err)
		}
		parameters = []domain.SensitivityParameter{param}
	case len(paramStrings) > 0:
		for _, s := range paramStrings {
			param, err := parseParameterString(s)
			if err != nil {
				return fmt.Errorf("error parsing parameter '%s': %w", s, err)
			}
			parameters = append(parameters, param)
		}
	default:
		return fmt.Errorf("must specify either --parameter, --parameter-set, or --range")
	}

	analyzer := calculation.NewSensitivityAnalyzer()
	analyzer.Horizon, _ = flags.GetInt("years")
	if debugMode, _ := flags.GetBool("debug"); debugMode {
		analyzer.SetLogger(cliLogger{})
	}

	var analysis any
	switch {
	case len(parameters) == 2 && analysisType == "matrix":
		analysis, err = analyzer.AnalyzeParameterMatrix(cmd.Context(), cfg, parameters[0], parameters[1])
	case len(parameters) == 1:
		analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), cfg, parameters[0])
	default:
		analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), cfg, parameters)
	}
	if err != nil {
		return fmt.Errorf("error performing sensitivity analysis: %w", err)
	}

	format, _ := flags.GetString("output")
	text, err := output.NewSensitivityFormatter(format, cfg.DisplayCurrency()).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

func getPredefinedParameterSet(setName string) ([]domain.SensitivityParameter, error) {
	switch setName {
	case "common":
		params := domain.GetCommonParameters()
		for i := range params {
			params[i].BaseValue = decimal.Zero
		}
		return params, nil
	default:
		return nil, fmt.Errorf("unknown parameter set: %s", setName)
	}
}

// parseParameterString parses name:min-max:steps
func parseParameterString(paramStr string) (domain.SensitivityParameter, error) {
	parts := strings.Split(paramStr, ":")
	if len(parts) != 3 {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid parameter format: %s (expected name:min-max:steps)", paramStr)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return domain.SensitivityParameter{}, fmt.Errorf("invalid steps value: %w", err)
	}
	return parseSingleParameter(parts[0], parts[1], steps)
}

func parseSingleParameter(name, rangeStr string, steps int) (domain.SensitivityParameter, error) {
	minValue, maxValue, err := parseRange(rangeStr)
	if err != nil {
		return domain.SensitivityParameter{}, err
	}
	if steps < 2 {
		return domain.SensitivityParameter{}, fmt.Errorf("steps must be at least 2, got %d", steps)
	}

	param, ok := knownParameter(name)
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %s (valid: %s)", name, strings.Join(parameterNames, ", "))
	}
	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	// the analyzer fills the base value from the configuration
	param.BaseValue = decimal.Zero
	return param, nil
}

var parameterNames = []string{
	domain.ParamAvgYearlyReturns,
	domain.ParamWithdrawalRate,
	domain.ParamRetirementIncomeTarget,
	domain.ParamInitialCapital,
	domain.ParamSpendingScale,
}

func knownParameter(name string) (domain.SensitivityParameter, bool) {
	for _, p := range domain.GetCommonParameters() {
		if p.Name == name {
			return p, true
		}
	}
	switch name {
	case domain.ParamRetirementIncomeTarget:
		return domain.SensitivityParameter{Name: name, Unit: "amount", Description: "Yearly income the withdrawal must cover"}, true
	case domain.ParamInitialCapital:
		return domain.SensitivityParameter{Name: name, Unit: "amount", Description: "Capital at the start of the first year"}, true
	}
	return domain.SensitivityParameter{}, false
}

// parseRange parses min-max where min may be negative
func parseRange(rangeStr string) (decimal.Decimal, decimal.Decimal, error) {
	i := -1
	if len(rangeStr) > 1 {
		if j := strings.Index(rangeStr[1:], "-"); j >= 0 {
			i = j + 1
		}
	}
	if i < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range format: %s (expected min-max)", rangeStr)
	}

	minValue, err := decimal.NewFromString(rangeStr[:i])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := decimal.NewFromString(rangeStr[i+1:])
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid max value: %w", err)
	}
	if minValue.GreaterThan(maxValue) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("min %s is greater than max %s", minValue, maxValue)
	}
	return minValue, maxValue, nil
}
