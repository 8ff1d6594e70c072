package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/simulation"
)

// ErrUnknownTemplate is wrapped when a comparison names a template that is not registered
var ErrUnknownTemplate = errors.New("unknown template")

// CompareEngine simulates a request together with what-if variants of it
type CompareEngine struct {
	Simulator        *simulation.Simulator
	TemplateRegistry *TemplateRegistry
}

// NewCompareEngine creates a comparison engine. Variants differ by strategy,
// so a nil simulator gets one that honors each payment's strategy.
func NewCompareEngine(sim *simulation.Simulator) *CompareEngine {
	if sim == nil {
		sim = simulation.NewSimulator(nil, simulation.Options{HonorPaymentStrategies: true})
	}
	return &CompareEngine{
		Simulator:        sim,
		TemplateRegistry: CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string
	// Templates to apply; DefaultTemplates when empty
	Templates []string
}

// Compare simulates the base request and one variant per template
func (ce *CompareEngine) Compare(ctx context.Context, base domain.SimulationRequest, options CompareOptions) (*ComparisonSet, error) {
	names := options.Templates
	if len(names) == 0 {
		names = DefaultTemplates
	}
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	templates := make([]Template, len(names))
	reqs := make([]domain.SimulationRequest, 0, len(names)+1)
	reqs = append(reqs, base)
	for i, name := range names {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found: %w", name, ErrUnknownTemplate)
		}
		modified, err := ApplyTransforms(base, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		templates[i] = template
		reqs = append(reqs, modified)
	}

	results := ce.Simulator.RunBatch(ctx, reqs)
	if results[0].Err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", results[0].Err)
	}

	baseResult := newComparisonResult(baseName, "As requested", results[0].Result)
	compSet := &ComparisonSet{
		BaseScenarioName: baseName,
		BaseResult:       &baseResult,
	}

	for i, r := range results[1:] {
		if r.Err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templates[i].Name, r.Err)
		}
		alt := newComparisonResult(baseName+"_"+templates[i].Name, templates[i].Description, r.Result)
		compSet.AlternativeResults = append(compSet.AlternativeResults, alt.withDiff(baseResult))
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
