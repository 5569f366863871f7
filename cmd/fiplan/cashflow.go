package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
)

func cashflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "List and edit the incomes and spendings of a configuration",
	}
	cmd.PersistentFlags().String("list", domain.ListIncomes, "Cash flow list (incomes, spendings)")

	list := &cobra.Command{
		Use:   "list [input-file]",
		Short: "List cash flows",
		Args:  cobra.ExactArgs(1),
		RunE:  runCashflowList,
	}
	list.Flags().Bool("all", false, "List incomes and spendings")

	add := &cobra.Command{
		Use:   "add [input-file]",
		Short: "Add a cash flow, or replace the one with the same --id",
		Long: `Add a cash flow to a configuration file.

Examples:
  fiplan cashflow add plan.yaml --name Bonus --amount 5000 --year 2027
  fiplan cashflow add plan.yaml --list spendings --name Rent --amount 1500 --recurring --scope month
  fiplan cashflow add plan.yaml --name Pension --amount 12000 --recurring --start age --start-value 65`,
		Args: cobra.ExactArgs(1),
		RunE: runCashflowAdd,
	}
	add.Flags().String("id", "", "Cash flow id (generated when empty)")
	add.Flags().String("name", "", "Display name")
	add.Flags().String("amount", "", "Amount per occurrence (required)")
	add.Flags().Int("year", 0, "Year of a one-time cash flow (default: current year)")
	add.Flags().Bool("recurring", false, "Create a recurring cash flow")
	add.Flags().Int("frequency", 1, "Occurrences per scope")
	add.Flags().String("scope", string(domain.ScopeYear), "Frequency scope (day, week, month, year)")
	add.Flags().String("start", string(domain.StartNow), "Starting rule (now, goal, age, year)")
	add.Flags().Int("start-value", 0, "Age or year for the starting rule")
	add.Flags().String("until", string(domain.UntilForever), "Until rule (forever, goal, age, year)")
	add.Flags().Int("until-value", 0, "Age or year for the until rule")
	_ = add.MarkFlagRequired("amount")

	remove := &cobra.Command{
		Use:   "remove [input-file] [id]",
		Short: "Remove a cash flow by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			listName, _ := cmd.Flags().GetString("list")
			if err := config.NewCashFlowEditor(cfg).Remove(listName, args[1]); err != nil {
				return err
			}
			if err := config.NewWriter().SaveToFile(cfg, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], listName)
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func runCashflowList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	lists := []string{}
	if all, _ := cmd.Flags().GetBool("all"); all {
		lists = append(lists, domain.ListIncomes, domain.ListSpendings)
	} else {
		listName, _ := cmd.Flags().GetString("list")
		lists = append(lists, listName)
	}

	editor := config.NewCashFlowEditor(cfg)
	t := table.New().Headers("List", "ID", "Name", "Amount", "Schedule")
	for _, name := range lists {
		flows, err := editor.List(name)
		if err != nil {
			return err
		}
		for _, cf := range flows {
			t.Row(name, cf.ID, cf.Name, output.FormatMoney(cf.Amount, cfg.DisplayCurrency()), describeSchedule(cf))
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func runCashflowAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(args[0])
	if err != nil {
		return err
	}

	cf, err := cashFlowFromFlags(cmd)
	if err != nil {
		return err
	}
	if err := cf.Validate(); err != nil {
		return err
	}

	listName, _ := cmd.Flags().GetString("list")
	stored, err := config.NewCashFlowEditor(cfg).Upsert(listName, cf)
	if err != nil {
		return err
	}
	if err := config.NewWriter().SaveToFile(cfg, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s) to %s\n", stored.ID, describeSchedule(stored), listName)
	return nil
}

// cashFlowFromFlags builds a cash flow from the add flags, using the
// current year for one-time flows without --year
func cashFlowFromFlags(cmd *cobra.Command) (domain.CashFlow, error) {
	flags := cmd.Flags()
	amountStr, _ := flags.GetString("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.CashFlow{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	name, _ := flags.GetString("name")
	id, _ := flags.GetString("id")
	defaults := config.NewDefaults()

	recurring, _ := flags.GetBool("recurring")
	if !recurring {
		cf := defaults.NewOneTime(name, amount)
		if year, _ := flags.GetInt("year"); flags.Changed("year") {
			cf.FixedYear = domain.IntPtr(year)
		}
		cf.ID = id
		return cf, nil
	}

	cf := defaults.NewRecurring(name, amount)
	cf.ID = id
	opts := cf.RecurringOptions
	opts.Frequency, _ = flags.GetInt("frequency")
	scope, _ := flags.GetString("scope")
	opts.FrequencyScope = domain.FrequencyScope(scope)
	start, _ := flags.GetString("start")
	opts.StartingType = domain.StartingType(start)
	if flags.Changed("start-value") {
		v, _ := flags.GetInt("start-value")
		opts.StartingValue = domain.IntPtr(v)
	}
	until, _ := flags.GetString("until")
	opts.UntilType = domain.UntilType(until)
	if flags.Changed("until-value") {
		v, _ := flags.GetInt("until-value")
		opts.UntilValue = domain.IntPtr(v)
	}
	return cf, nil
}

// describeSchedule renders when a cash flow applies
func describeSchedule(cf domain.CashFlow) string {
	if !cf.Recurring {
		if cf.FixedYear == nil {
			return "once (no year)"
		}
		return "once in " + strconv.Itoa(*cf.FixedYear)
	}
	opts := cf.RecurringOptions
	if opts == nil {
		return "recurring (no options)"
	}
	return fmt.Sprintf("%d/%s from %s until %s",
		opts.Frequency, opts.FrequencyScope,
		describeRule(string(opts.StartingType), opts.StartingValue),
		describeRule(string(opts.UntilType), opts.UntilValue))
}

func describeRule(rule string, value *int) string {
	if value == nil {
		return rule
	}
	return fmt.Sprintf("%s %d", rule, *value)
}
