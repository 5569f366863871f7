package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []ConfigTransform
}

// Template categories
const (
	CategoryMarket   = "Market"
	CategorySpending = "Spending"
	CategoryStrategy = "Withdrawal Strategy"
	CategoryEvents   = "Events"
)

var templateCategories = []string{CategoryMarket, CategorySpending, CategoryStrategy, CategoryEvents}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns all templates sorted by name
func (tr *TemplateRegistry) Templates() []Template {
	out := make([]Template, 0, len(tr.templates))
	for _, name := range tr.List() {
		out = append(out, tr.templates[name])
	}
	return out
}

// CreateBuiltInTemplates creates a template registry with common early retirement scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "bear_market",
		Description: "Average returns 3 points lower",
		Category:    CategoryMarket,
		Transforms: []ConfigTransform{
			&AdjustReturns{Delta: decimal.NewFromInt(-3)},
		},
	})

	registry.Register(Template{
		Name:        "bull_market",
		Description: "Average returns 2 points higher",
		Category:    CategoryMarket,
		Transforms: []ConfigTransform{
			&AdjustReturns{Delta: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "frugal",
		Description: "Cut every spending by 15%",
		Category:    CategorySpending,
		Transforms: []ConfigTransform{
			&ScaleCashFlows{List: domain.ListSpendings, Factor: decimal.RequireFromString("0.85")},
		},
	})

	registry.Register(Template{
		Name:        "lean_fire",
		Description: "Lean FIRE: spendings and income target at 75%",
		Category:    CategorySpending,
		Transforms: []ConfigTransform{
			&ScaleCashFlows{List: domain.ListSpendings, Factor: decimal.RequireFromString("0.75")},
			&ScaleIncomeTarget{Factor: decimal.RequireFromString("0.75")},
		},
	})

	registry.Register(Template{
		Name:        "fat_fire",
		Description: "Fat FIRE: spendings and income target at 150%",
		Category:    CategorySpending,
		Transforms: []ConfigTransform{
			&ScaleCashFlows{List: domain.ListSpendings, Factor: decimal.RequireFromString("1.5")},
			&ScaleIncomeTarget{Factor: decimal.RequireFromString("1.5")},
		},
	})

	registry.Register(Template{
		Name:        "conservative_swr",
		Description: "Conservative 3.25% safe withdrawal rate",
		Category:    CategoryStrategy,
		Transforms: []ConfigTransform{
			&SetWithdrawalRate{Rate: decimal.RequireFromString("3.25")},
		},
	})

	registry.Register(Template{
		Name:        "windfall",
		Description: "One-time income of 50,000 five years after the start",
		Category:    CategoryEvents,
		Transforms: []ConfigTransform{
			&AddOneTimeCashFlow{List: domain.ListIncomes, Flow: "Windfall", Amount: decimal.NewFromInt(50000), Offset: 5},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base configuration
func ApplyTemplate(base *domain.Configuration, template Template) (*domain.Configuration, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	byCategory := make(map[string][]Template)
	for _, t := range registry.Templates() {
		category := t.Category
		if category == "" {
			category = CategoryEvents
		}
		byCategory[category] = append(byCategory[category], t)
	}

	for _, category := range templateCategories {
		templates := byCategory[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  fiplan compare plan.yaml --with bear_market,frugal\n")
	sb.WriteString("  fiplan compare plan.yaml --with lean_fire --transform set_returns:rate=5\n")

	return sb.String()
}
