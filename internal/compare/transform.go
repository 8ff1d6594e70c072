package compare

import (
	"fmt"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// RequestTransform derives a what-if request from a base request. Transforms
// never mutate their input.
type RequestTransform interface {
	Apply(base domain.SimulationRequest) (domain.SimulationRequest, error)
	Name() string
	Description() string
}

// ApplyTransforms applies transforms in order, each to the previous output
func ApplyTransforms(base domain.SimulationRequest, transforms []RequestTransform) (domain.SimulationRequest, error) {
	current := clone(base)
	for i, t := range transforms {
		if t == nil {
			return current, fmt.Errorf("transform at index %d is nil", i)
		}
		next, err := t.Apply(current)
		if err != nil {
			return current, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

func clone(req domain.SimulationRequest) domain.SimulationRequest {
	out := req
	if req.ExtraPayments != nil {
		out.ExtraPayments = append([]domain.ExtraPayment(nil), req.ExtraPayments...)
	}
	return out
}

// SwitchSystem reruns the request under another amortization system
type SwitchSystem struct {
	System domain.AmortizationSystem
}

func (t SwitchSystem) Name() string { return "switch_system" }

func (t SwitchSystem) Description() string {
	return "Amortize with " + t.System.Description()
}

func (t SwitchSystem) Apply(base domain.SimulationRequest) (domain.SimulationRequest, error) {
	if _, err := domain.ParseAmortizationSystem(string(t.System)); err != nil {
		return base, err
	}
	out := clone(base)
	out.System = t.System
	return out, nil
}

// SetStrategy gives every extra payment the same strategy
type SetStrategy struct {
	Strategy domain.ExtraPaymentStrategy
}

func (t SetStrategy) Name() string { return "set_strategy" }

func (t SetStrategy) Description() string {
	if t.Strategy == domain.ReduceInstallment {
		return "Keep the term and lower the installments after each extra"
	}
	return "Keep the installment and shorten the term after each extra"
}

func (t SetStrategy) Apply(base domain.SimulationRequest) (domain.SimulationRequest, error) {
	if _, err := domain.ParseExtraPaymentStrategy(string(t.Strategy)); err != nil {
		return base, err
	}
	out := clone(base)
	for i := range out.ExtraPayments {
		out.ExtraPayments[i].Strategy = t.Strategy
	}
	return out, nil
}

// ScaleExtras multiplies every extra payment amount
type ScaleExtras struct {
	Factor decimal.Decimal
}

func (t ScaleExtras) Name() string { return "scale_extras" }

func (t ScaleExtras) Description() string {
	return "Multiply every extra payment by " + t.Factor.String()
}

func (t ScaleExtras) Apply(base domain.SimulationRequest) (domain.SimulationRequest, error) {
	if !t.Factor.IsPositive() {
		return base, fmt.Errorf("scale factor must be positive, got %s", t.Factor)
	}
	out := clone(base)
	for i := range out.ExtraPayments {
		out.ExtraPayments[i].Amount = out.ExtraPayments[i].Amount.Mul(t.Factor)
	}
	return out, nil
}

// DropExtras removes every extra payment
type DropExtras struct{}

func (DropExtras) Name() string        { return "drop_extras" }
func (DropExtras) Description() string { return "Pay only the scheduled installments" }

func (DropExtras) Apply(base domain.SimulationRequest) (domain.SimulationRequest, error) {
	out := clone(base)
	out.ExtraPayments = nil
	return out, nil
}
