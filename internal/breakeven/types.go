package breakeven

import (
	"errors"
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// Goal is the outcome a single extra payment must achieve
type Goal string

const (
	// GoalPayoffWithin finishes the loan within TargetMonths
	GoalPayoffWithin Goal = "payoff_within"
	// GoalSaveInterest saves at least TargetInterestSaved
	GoalSaveInterest Goal = "save_interest"
)

// ParseGoal accepts the goal names used on the command line
func ParseGoal(s string) (Goal, error) {
	switch s {
	case "payoff", "payoff_within", "months":
		return GoalPayoffWithin, nil
	case "interest", "save_interest":
		return GoalSaveInterest, nil
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// SolveRequest asks for the smallest extra payment at Month that reaches Goal.
// The solved payment replaces any extra the base request already has in Month.
type SolveRequest struct {
	Base     domain.SimulationRequest    `json:"base"`
	Month    int                         `json:"month"`
	Strategy domain.ExtraPaymentStrategy `json:"strategy"`
	Goal     Goal                        `json:"goal"`

	TargetMonths        int             `json:"target_months,omitempty"`
	TargetInterestSaved decimal.Decimal `json:"target_interest_saved"`

	MaxIterations int             `json:"-"`
	Tolerance     decimal.Decimal `json:"-"`
}

// SolveResult is the extra payment found and the simulation it produces
type SolveResult struct {
	Request         SolveRequest        `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`
	ExtraPayment    domain.ExtraPayment `json:"extra_payment"`
	// LowerBound is the largest amount tried that missed the goal
	LowerBound decimal.Decimal          `json:"lower_bound"`
	Result     *domain.SimulationResult `json:"result"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.RequireFromString("0.01"),
		MaxIterations: 64,
	}
}

// Validate checks that the request can be solved at all
func (r *SolveRequest) Validate() error {
	if r.Month < 1 || r.Month > r.Base.TermsInMonths {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("month must be between 1 and %d, got %d", r.Base.TermsInMonths, r.Month),
		}
	}

	switch r.Goal {
	case GoalPayoffWithin:
		if r.TargetMonths < 1 {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "target months must be positive",
			}
		}
	case GoalSaveInterest:
		if !r.TargetInterestSaved.IsPositive() {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "target interest saved must be positive",
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unsupported goal: %s", r.Goal),
		}
	}
	return nil
}

// ErrInfeasible is wrapped when even paying off the whole loan misses the goal
var ErrInfeasible = errors.New("goal is infeasible")

// BreakEvenError represents errors from the extra payment solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// SweepResult holds one solve per candidate month
type SweepResult struct {
	Results         []SolveResult `json:"results"`
	Infeasible      []int         `json:"infeasible_months,omitempty"`
	Cheapest        *SolveResult  `json:"cheapest,omitempty"`
	Recommendations []string      `json:"recommendations"`
}
