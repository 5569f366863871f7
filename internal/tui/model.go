package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/rgehrsitz/fiplan/internal/tui/components"
)

// tableChrome is the number of lines the dashboard needs besides table rows
const tableChrome = 26

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene
	keys          KeyMap

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	loader     func(path string) (*domain.Configuration, error)
	base       *domain.Configuration

	engine *calculation.ProjectionEngine
	years  int

	// Projections of the loaded configuration and of the slider state
	baseProjection *domain.Projection
	projection     *domain.Projection
	generation     int

	sliders []*components.ParameterSlider
	focused int
	table   *components.ProjectionTable

	err     error
	loading bool
}

// NewModel creates a new application model for the configuration at configPath
func NewModel(configPath string, engine *calculation.ProjectionEngine) Model {
	return Model{
		currentScene: SceneDashboard,
		keys:         DefaultKeyMap(),
		configPath:   configPath,
		loader:       config.NewInputParser().LoadFromFile,
		engine:       engine,
		years:        calculation.RowsToShow,
		table:        components.NewProjectionTable(15),
		width:        120,
		height:       40,
		loading:      true,
	}
}

// WithLoader replaces the configuration loader
func (m Model) WithLoader(loader func(path string) (*domain.Configuration, error)) Model {
	m.loader = loader
	return m
}

// WithYears sets the projection horizon
func (m Model) WithYears(years int) Model {
	m.years = years
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.loader, m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(loader func(string) (*domain.Configuration, error), path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := loader(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// projectCmd returns a command that projects cfg in the background
func projectCmd(engine *calculation.ProjectionEngine, cfg *domain.Configuration, years, generation int) tea.Cmd {
	return func() tea.Msg {
		p, err := engine.Project(context.Background(), cfg, years)
		return ProjectionMsg{Generation: generation, Projection: p, Err: err}
	}
}

// buildSliders creates one slider per tunable parameter of the base configuration
func (m *Model) buildSliders() {
	cfg := m.base
	currency := cfg.DisplayCurrency()
	money := func(v decimal.Decimal) string { return output.FormatMoneyWhole(v, currency) }
	percent := func(v decimal.Decimal) string { return output.FormatPercentage(v) }
	factor := func(v decimal.Decimal) string { return "x" + v.StringFixed(2) }

	capitalMax := decimal.Max(cfg.InitialCapital.Mul(decimal.NewFromInt(3)), decimal.NewFromInt(100000))
	targetMax := decimal.Max(cfg.RetirementIncomeTarget.Mul(decimal.NewFromInt(3)), decimal.NewFromInt(100000))

	m.sliders = []*components.ParameterSlider{
		components.NewParameterSlider(domain.ParamAvgYearlyReturns, "Average yearly returns",
			cfg.AvgYearlyReturns, decimal.NewFromInt(-10), decimal.NewFromInt(20), decimal.RequireFromString("0.25")).
			WithFormat(percent).
			WithDescription("Credited once a year on the capital after savings"),
		components.NewParameterSlider(domain.ParamWithdrawalRate, "Withdrawal rate",
			cfg.WithdrawalRate, decimal.Zero, decimal.NewFromInt(10), decimal.RequireFromString("0.25")).
			WithFormat(percent).
			WithDescription("Share of start of year capital available as retirement income"),
		components.NewParameterSlider(domain.ParamRetirementIncomeTarget, "Income target",
			cfg.RetirementIncomeTarget, decimal.Zero, targetMax, decimal.NewFromInt(1000)).
			WithFormat(money).
			WithDescription("Yearly income the withdrawal must cover"),
		components.NewParameterSlider(domain.ParamInitialCapital, "Initial capital",
			cfg.InitialCapital, decimal.Zero, capitalMax, decimal.NewFromInt(5000)).
			WithFormat(money).
			WithDescription("Capital at the start of the first year"),
		components.NewParameterSlider(domain.ParamSpendingScale, "Spending scale",
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(2), decimal.RequireFromString("0.05")).
			WithFormat(factor).
			WithDescription("Multiplies every spending"),
	}
	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	for i, s := range m.sliders {
		s.SetFocused(i == m.focused)
	}
}

// currentConfiguration applies the slider values to a copy of the base configuration
func (m Model) currentConfiguration() (*domain.Configuration, error) {
	cfg := m.base
	for _, s := range m.sliders {
		next, err := calculation.ApplyParameter(cfg, s.Param, s.Value)
		if err != nil {
			return nil, err
		}
		cfg = next
	}
	return cfg, nil
}

// recalculate schedules a projection of the slider state
func (m *Model) recalculate() tea.Cmd {
	cfg, err := m.currentConfiguration()
	if err != nil {
		m.err = err
		return nil
	}
	m.generation++
	return projectCmd(m.engine, cfg, m.years, m.generation)
}

// Projection returns the projection currently displayed
func (m Model) Projection() *domain.Projection {
	return m.projection
}

// Sliders returns the parameter sliders
func (m Model) Sliders() []*components.ParameterSlider {
	return m.sliders
}

// Err returns the last error
func (m Model) Err() error {
	return m.err
}
