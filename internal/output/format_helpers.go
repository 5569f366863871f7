package output

import (
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount in the given currency with its minor units,
// e.g. "$1,234.57" for CAD. Unknown currencies fall back to "1234.57 XYZ".
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatMoneyWhole formats an amount rounded to whole units, e.g. "$1,235".
func FormatMoneyWhole(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(0) + " " + code
	}
	f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(amount.Round(0).IntPart())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatAge renders an optional age, empty when unknown.
func FormatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}

// FormatYear renders an optional year, "never" when unset.
func FormatYear(year *int) string {
	if year == nil {
		return "never"
	}
	return strconv.Itoa(*year)
}

func goalMark(row *domain.Row) string {
	if row.GoalReached {
		return "yes"
	}
	return ""
}
