package simulation

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/erickbogarin/amortiza/internal/calculation"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/erickbogarin/amortiza/internal/simulation"

// Options tunes how requests are turned into schedules
type Options struct {
	// HonorPaymentStrategies applies each extra payment's own strategy.
	// When false every extra shortens the term.
	HonorPaymentStrategies bool

	// Concurrency bounds RunBatch; zero means runtime.NumCPU()
	Concurrency int
}

// Simulator turns a SimulationRequest into a SimulationResult: a baseline
// schedule, a schedule with the extra payments and the savings between them.
type Simulator struct {
	Engine  *calculation.FinancingEngine
	Options Options
	tracer  trace.Tracer
}

// NewSimulator creates a simulator; a nil engine gets a default one
func NewSimulator(engine *calculation.FinancingEngine, opts Options) *Simulator {
	if engine == nil {
		engine = calculation.NewFinancingEngine()
	}
	return &Simulator{
		Engine:  engine,
		Options: opts,
		tracer:  otel.Tracer(tracerName),
	}
}

// Run simulates a single request
func (s *Simulator) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "simulation.Run", trace.WithAttributes(
		attribute.String("loan.system", string(req.System)),
		attribute.String("loan.amount", req.LoanAmount.StringFixed(2)),
		attribute.Int("loan.terms", req.TermsInMonths),
		attribute.Int("loan.extra_payments", len(req.ExtraPayments)),
	))
	defer span.End()

	start := time.Now()
	result, err := s.run(req)
	metrics.SimulationDuration.WithLabelValues(string(req.System)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.Simulations.WithLabelValues(string(req.System), "error").Inc()
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("result.months_without_extras", result.SummaryWithoutExtras.TotalMonths),
		attribute.Int("result.months_with_extras", result.SummaryWithExtras.TotalMonths),
		attribute.Int("result.months_saved", result.SummaryWithExtras.MonthsSaved),
	)
	metrics.Simulations.WithLabelValues(string(req.System), "ok").Inc()
	metrics.MonthsSaved.WithLabelValues(string(req.System)).Observe(float64(result.SummaryWithExtras.MonthsSaved))
	return result, nil
}

func (s *Simulator) run(req domain.SimulationRequest) (*domain.SimulationResult, error) {
	monthlyRate := req.InterestRate.ToMonthly().Value

	cmp, err := s.Engine.ComparePlan(req.LoanAmount, monthlyRate, req.TermsInMonths, req.System, s.plan(req.ExtraPayments))
	if err != nil {
		return nil, fmt.Errorf("failed to simulate %s loan: %w", req.System, err)
	}

	return &domain.SimulationResult{
		Request:               req,
		ScheduleWithoutExtras: cmp.ScheduleWithoutExtras,
		ScheduleWithExtras:    cmp.ScheduleWithExtras,
		SummaryWithoutExtras:  cmp.SummaryWithoutExtras,
		SummaryWithExtras:     cmp.SummaryWithExtras,
	}, nil
}

func (s *Simulator) plan(payments []domain.ExtraPayment) calculation.ExtraPlan {
	if s.Options.HonorPaymentStrategies {
		return calculation.PlanFromPayments(payments)
	}
	return calculation.UniformPlan(calculation.ExtrasByMonth(payments), true)
}

// BatchResult pairs the outcome of one request in a batch with its error
type BatchResult struct {
	Result *domain.SimulationResult
	Err    error
}

// RunBatch simulates independent requests concurrently. Results keep the
// order of the input slice.
func (s *Simulator) RunBatch(ctx context.Context, reqs []domain.SimulationRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))

	workers := s.Options.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = BatchResult{Err: ctx.Err()}
				return
			}

			result, err := s.Run(ctx, reqs[idx])
			results[idx] = BatchResult{Result: result, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}
