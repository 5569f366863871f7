package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as console text
type TableFormatter struct {
	Currency string
}

// Format generates a formatted report for one optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal Deadline:       %d\n", result.Deadline))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	target := result.Request.Target
	sb.WriteString("OPTIMAL PARAMETER\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Current Value:       %s\n", tf.formatValue(target, result.BaseValue)))
	if result.OptimalValue != nil {
		sb.WriteString(fmt.Sprintf("Break-even Value:    %s\n", tf.formatValue(target, *result.OptimalValue)))
		sb.WriteString(fmt.Sprintf("Change:              %s%s\n",
			tf.deltaSymbol(result.Change), tf.formatValue(target, result.Change)))
	}
	if result.AlreadyMeets {
		sb.WriteString("The current plan already reaches the goal by the deadline\n")
	}
	sb.WriteString("\n")

	if result.Summary != nil {
		sb.WriteString("PROJECTED RESULTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Goal Year:           %s\n", output.FormatYear(result.Summary.GoalYear)))
		sb.WriteString(fmt.Sprintf("Final Capital:       %s\n", output.FormatMoneyWhole(result.Summary.FinalCapital, tf.Currency)))
		sb.WriteString(fmt.Sprintf("Total Returns:       %s\n", output.FormatMoneyWhole(result.Summary.TotalReturns, tf.Currency)))
		if result.Summary.DepletionYear != nil {
			sb.WriteString(fmt.Sprintf("Depletion Year:      %d\n", *result.Summary.DepletionYear))
		}
		sb.WriteString("\n")
	}

	if result.BaseSummary != nil {
		sb.WriteString("CURRENT PLAN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Goal Year:           %s\n", output.FormatYear(result.BaseSummary.GoalYear)))
		sb.WriteString(fmt.Sprintf("Final Capital:       %s\n", output.FormatMoneyWhole(result.BaseSummary.FinalCapital, tf.Currency)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from solving several targets
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal Deadline: %d\n\n", result.Deadline))

	sb.WriteString(fmt.Sprintf("%-26s %16s %16s %10s\n", "Target", "Current", "Break-even", "Goal Year"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		optimal := "-"
		if res.OptimalValue != nil {
			optimal = tf.formatValue(res.Request.Target, *res.OptimalValue)
		}
		goal := "-"
		if res.Summary != nil {
			goal = output.FormatYear(res.Summary.GoalYear)
		}
		sb.WriteString(fmt.Sprintf("%-26s %16s %16s %10s\n",
			tf.truncate(string(res.Request.Target), 26),
			tf.formatValue(res.Request.Target, res.BaseValue),
			optimal,
			goal))
	}
	sb.WriteString("\n")

	if len(result.Failed) > 0 {
		sb.WriteString(fmt.Sprintf("Unreachable by %d: %s\n\n", result.Deadline, strings.Join(result.Failed, ", ")))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not reachable"
}

func (tf *TableFormatter) formatValue(target OptimizationTarget, v decimal.Decimal) string {
	switch target {
	case OptimizeInitialCapital, OptimizeIncomeTarget:
		return output.FormatMoneyWhole(v, tf.Currency)
	case OptimizeSpendingScale:
		return "x" + v.StringFixed(4)
	default:
		return output.FormatPercentage(v)
	}
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
