package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/erickbogarin/amortiza/internal/calculation"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ValidationError reports a request field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Rate is a rate as written in a request document: a fraction such as 0.13
// or a percentage string such as "13%".
type Rate struct {
	decimal.Decimal
	set bool
}

// UnmarshalYAML accepts numbers and "N%" strings
func (r *Rate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: rate must be a scalar", node.Line)
	}
	value, err := ParseRate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	r.Decimal = value
	r.set = true
	return nil
}

// MarshalYAML writes the rate as a plain fraction
func (r Rate) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: r.Decimal.String()}, nil
}

// UnmarshalJSON accepts numbers and "N%" strings
func (r *Rate) UnmarshalJSON(data []byte) error {
	value, err := ParseRate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	r.Decimal = value
	r.set = true
	return nil
}

// IsSet reports whether the document provided this rate
func (r Rate) IsSet() bool {
	return r.set
}

// IsZero reports an absent rate, so omitempty keeps an explicit zero rate
func (r Rate) IsZero() bool {
	return !r.set
}

// NewRate wraps a fraction as a document rate
func NewRate(value decimal.Decimal) Rate {
	return Rate{Decimal: value, set: true}
}

// ParseRate parses "0.13", "13%" or "13 %" into a fraction
func ParseRate(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	percent := strings.HasSuffix(trimmed, "%")
	if percent {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q", s)
	}
	if percent {
		value = value.Div(decimal.NewFromInt(100))
	}
	return value, nil
}

// ExtraPaymentDocument is one extra payment as written in a request document
type ExtraPaymentDocument struct {
	Month    int             `yaml:"month" json:"month"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	Strategy string          `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// RequestDocument is the file/API representation of a simulation request.
// Exactly one of AnnualRate and MonthlyRate must be given.
type RequestDocument struct {
	Name          string                 `yaml:"name,omitempty" json:"name,omitempty"`
	LoanAmount    decimal.Decimal        `yaml:"loan_amount" json:"loan_amount"`
	AnnualRate    Rate                   `yaml:"annual_rate,omitempty" json:"annual_rate,omitempty"`
	MonthlyRate   Rate                   `yaml:"monthly_rate,omitempty" json:"monthly_rate,omitempty"`
	TermsInMonths int                    `yaml:"terms_in_months" json:"terms_in_months"`
	System        string                 `yaml:"system" json:"system"`
	ExtraPayments []ExtraPaymentDocument `yaml:"extra_payments,omitempty" json:"extra_payments,omitempty"`
}

// BatchDocument holds several named requests in one file
type BatchDocument struct {
	Simulations []RequestDocument `yaml:"simulations" json:"simulations"`
}

// NamedRequest is a validated request with the name it was given in its document
type NamedRequest struct {
	Name    string
	Request domain.SimulationRequest
}

// InputParser handles parsing of simulation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads every request in a YAML or JSON file. A file holds
// either a single request or a `simulations` list.
func (ip *InputParser) LoadFromFile(filename string) ([]NamedRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseAll(data)
}

// ParseAll parses a single-request or batch document
func (ip *InputParser) ParseAll(data []byte) ([]NamedRequest, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if _, ok := probe["simulations"]; !ok {
		doc, err := ip.decode(data)
		if err != nil {
			return nil, err
		}
		req, err := ip.FromDocument(*doc)
		if err != nil {
			return nil, err
		}
		return []NamedRequest{{Name: doc.Name, Request: *req}}, nil
	}

	var batch BatchDocument
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(batch.Simulations) == 0 {
		return nil, invalid("simulations", "at least one simulation is required")
	}

	requests := make([]NamedRequest, 0, len(batch.Simulations))
	for i, doc := range batch.Simulations {
		req, err := ip.FromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("simulation %d (%s) validation failed: %w", i, doc.Name, err)
		}
		name := doc.Name
		if name == "" {
			name = fmt.Sprintf("simulation-%d", i+1)
		}
		requests = append(requests, NamedRequest{Name: name, Request: *req})
	}
	return requests, nil
}

// Parse parses and validates one request document. JSON is accepted as well,
// being a subset of YAML.
func (ip *InputParser) Parse(data []byte) (*domain.SimulationRequest, error) {
	doc, err := ip.decode(data)
	if err != nil {
		return nil, err
	}
	return ip.FromDocument(*doc)
}

func (ip *InputParser) decode(data []byte) (*RequestDocument, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalid("document", "is empty")
	}
	var doc RequestDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// FromDocument converts a document into a validated SimulationRequest
func (ip *InputParser) FromDocument(doc RequestDocument) (*domain.SimulationRequest, error) {
	system, err := domain.ParseAmortizationSystem(doc.System)
	if err != nil {
		return nil, invalid("system", "must be SAC or PRICE, got %q", doc.System)
	}

	var rate domain.InterestRate
	switch {
	case doc.AnnualRate.IsSet() && doc.MonthlyRate.IsSet():
		return nil, invalid("interest_rate", "give either annual_rate or monthly_rate, not both")
	case doc.AnnualRate.IsSet():
		rate = domain.Annual(doc.AnnualRate.Decimal)
	case doc.MonthlyRate.IsSet():
		rate = domain.Monthly(doc.MonthlyRate.Decimal)
	default:
		return nil, invalid("interest_rate", "annual_rate or monthly_rate is required")
	}

	req := &domain.SimulationRequest{
		LoanAmount:    doc.LoanAmount,
		InterestRate:  rate,
		TermsInMonths: doc.TermsInMonths,
		System:        system,
	}

	for i, p := range doc.ExtraPayments {
		strategy, err := domain.ParseExtraPaymentStrategy(p.Strategy)
		if err != nil {
			return nil, invalid(fmt.Sprintf("extra_payments[%d].strategy", i), "must be SHORTEN_TERM or REDUCE_INSTALLMENT, got %q", p.Strategy)
		}
		req.ExtraPayments = append(req.ExtraPayments, domain.ExtraPayment{
			Month:    p.Month,
			Amount:   p.Amount,
			Strategy: strategy,
		})
	}

	if err := ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return req, nil
}

// ValidateRequest checks the numeric invariants of a request before it
// reaches the calculation engine.
func ValidateRequest(req *domain.SimulationRequest) error {
	if !req.LoanAmount.IsPositive() {
		return invalid("loan_amount", "must be positive")
	}
	if req.InterestRate.Value.IsNegative() {
		return invalid("interest_rate", "must not be negative")
	}
	if req.TermsInMonths < 1 || req.TermsInMonths > calculation.MaxTermMonths {
		return invalid("terms_in_months", "must be between 1 and %d, got %d", calculation.MaxTermMonths, req.TermsInMonths)
	}
	if _, err := domain.ParseAmortizationSystem(string(req.System)); err != nil {
		return invalid("system", "must be SAC or PRICE, got %q", req.System)
	}

	for i, p := range req.ExtraPayments {
		field := fmt.Sprintf("extra_payments[%d]", i)
		if p.Month < 1 || p.Month > req.TermsInMonths {
			return invalid(field+".month", "must be between 1 and %d, got %d", req.TermsInMonths, p.Month)
		}
		if !p.Amount.IsPositive() {
			return invalid(field+".amount", "must be positive")
		}
	}
	return nil
}

// ToDocument renders a request back into its document form
func ToDocument(name string, req domain.SimulationRequest) RequestDocument {
	doc := RequestDocument{
		Name:          name,
		LoanAmount:    req.LoanAmount,
		TermsInMonths: req.TermsInMonths,
		System:        string(req.System),
	}
	if req.InterestRate.Kind == domain.RateMonthly {
		doc.MonthlyRate = NewRate(req.InterestRate.Value)
	} else {
		doc.AnnualRate = NewRate(req.InterestRate.Value)
	}
	for _, p := range req.ExtraPayments {
		doc.ExtraPayments = append(doc.ExtraPayments, ExtraPaymentDocument{
			Month:    p.Month,
			Amount:   p.Amount,
			Strategy: string(p.Strategy),
		})
	}
	return doc
}
