package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Amounts are nominal; no inflation adjustment is applied",
	"Returns are credited once a year on the capital after savings",
	"Recurring cash flows are annualized from their frequency and scope",
	"A year reaches the goal when the start of year withdrawal covers the income target",
	"Cash flows bound to the goal switch in the first goal year",
}
