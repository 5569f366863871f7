package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	Horizon           int
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.ProjectionEngine) *CompareEngine {
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
		Horizon:           calculation.RowsToShow,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // label of the unmodified configuration
	Templates        []string // template names, one alternative each
	Transforms       []string // transform specs, one alternative each
	ConfigPath       string
}

// NamedConfiguration is an alternative configuration compared as is
type NamedConfiguration struct {
	Name        string
	Description string
	Config      *domain.Configuration
}

// Compare projects the base configuration and one variant per template and
// transform spec, then compares every variant with the base
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	var alternatives []NamedConfiguration
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(config, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, NamedConfiguration{
			Name:        baseName + "_" + template.Name,
			Description: template.Description,
			Config:      modified,
		})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(config, []transform.ConfigTransform{t})
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, NamedConfiguration{
			Name:        baseName + "_" + t.Name(),
			Description: t.Description(),
			Config:      modified,
		})
	}

	compSet, err := ce.CompareConfigurations(ctx, baseName, config, alternatives)
	if err != nil {
		return nil, err
	}
	compSet.ConfigPath = options.ConfigPath
	return compSet, nil
}

// CompareConfigurations compares explicit configurations (not using templates),
// e.g. saved profiles
func (ce *CompareEngine) CompareConfigurations(
	ctx context.Context,
	baseName string,
	base *domain.Configuration,
	alternatives []NamedConfiguration,
) (*ComparisonSet, error) {
	baseProjection, err := ce.Engine.Project(ctx, base, ce.Horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, &baseProjection.Summary)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		projection, err := ce.Engine.Project(ctx, alt.Config, ce.Horizon)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}

		result := ce.MetricsCalculator.CalculateMetrics(alt.Name, &projection.Summary)
		result.Description = alt.Description
		results = append(results, ce.MetricsCalculator.CalculateComparison(result, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		Currency:           base.DisplayCurrency(),
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
