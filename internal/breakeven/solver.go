package breakeven

import (
	"context"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/shopspring/decimal"
)

// Solver finds the smallest single extra payment that reaches a goal
type Solver struct {
	Simulator *simulation.Simulator
	Options   SolverOptions
}

// NewSolver creates a new solver. The solved payment's strategy must be
// honored, so a nil simulator gets one that does.
func NewSolver(sim *simulation.Simulator, options SolverOptions) *Solver {
	if sim == nil {
		sim = simulation.NewSimulator(nil, simulation.Options{HonorPaymentStrategies: true})
	}
	return &Solver{
		Simulator: sim,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(sim *simulation.Simulator) *Solver {
	return NewSolver(sim, DefaultSolverOptions())
}

// Solve bisects the extra amount between zero and the loan amount. Both
// goals are monotone in the amount, and the upper bound always meets the goal.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = domain.ShortenTerm
	}

	evaluate := func(amount decimal.Decimal) (*domain.SimulationResult, bool, error) {
		result, err := s.Simulator.Run(ctx, withExtra(req.Base, req.Month, amount, strategy))
		if err != nil {
			return nil, false, err
		}
		return result, meets(req, result), nil
	}

	base, ok, err := evaluate(decimal.Zero)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base scenario", Cause: err}
	}
	if ok {
		return &SolveResult{
			Request:         req,
			Success:         true,
			ConvergenceInfo: "goal already met without an extra payment",
			ExtraPayment:    domain.ExtraPayment{Month: req.Month, Amount: decimal.Zero, Strategy: strategy},
			Result:          base,
		}, nil
	}

	lo := decimal.Zero
	hi := req.Base.LoanAmount
	best, ok, err := evaluate(hi)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate upper bound", Cause: err}
	}
	if !ok {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("no single extra payment in month %d reaches the goal", req.Month),
			Cause:     ErrInfeasible,
		}
	}

	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mid := lo.Add(hi).Div(decimal.NewFromInt(2))
		result, ok, err := evaluate(mid)
		if err != nil {
			return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate scenario", Cause: err}
		}
		if ok {
			hi = mid
			best = result
		} else {
			lo = mid
		}
	}

	amount := hi.RoundCeil(2)
	if !amount.Equal(hi) {
		// Rounding up keeps the goal met
		if best, _, err = evaluate(amount); err != nil {
			return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate rounded amount", Cause: err}
		}
	}

	out := &SolveResult{
		Request:      req,
		Success:      true,
		Iterations:   iterations,
		ExtraPayment: domain.ExtraPayment{Month: req.Month, Amount: amount, Strategy: strategy},
		LowerBound:   lo,
		Result:       best,
	}
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		out.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
	} else {
		out.ConvergenceInfo = "bisection converged within " + req.Tolerance.String()
	}
	return out, nil
}

func meets(req SolveRequest, result *domain.SimulationResult) bool {
	switch req.Goal {
	case GoalPayoffWithin:
		return result.SummaryWithExtras.TotalMonths <= req.TargetMonths
	case GoalSaveInterest:
		return result.SummaryWithExtras.InterestSaved.GreaterThanOrEqual(req.TargetInterestSaved)
	}
	return false
}

func withExtra(base domain.SimulationRequest, month int, amount decimal.Decimal, strategy domain.ExtraPaymentStrategy) domain.SimulationRequest {
	out := base
	out.ExtraPayments = make([]domain.ExtraPayment, 0, len(base.ExtraPayments)+1)
	for _, p := range base.ExtraPayments {
		if p.Month != month {
			out.ExtraPayments = append(out.ExtraPayments, p)
		}
	}
	if amount.IsPositive() {
		out.ExtraPayments = append(out.ExtraPayments, domain.ExtraPayment{Month: month, Amount: amount, Strategy: strategy})
	}
	return out
}
