package compare

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON. The document is a flat
// scenario table: requests are reduced to their system and extra payment
// totals, and money is written as fixed two-decimal strings.
type JSONFormatter struct {
	Pretty bool
}

type jsonLoan struct {
	Amount        string `json:"amount"`
	InterestRate  string `json:"interestRate"`
	TermsInMonths int    `json:"termsInMonths"`
}

type jsonScenario struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Base              bool   `json:"base"`
	System            string `json:"system"`
	ExtraPayments     int    `json:"extraPayments"`
	ExtraPaymentTotal string `json:"extraPaymentTotal"`

	TotalMonths      int    `json:"totalMonths"`
	TotalPaid        string `json:"totalPaid"`
	TotalInterest    string `json:"totalInterest"`
	InterestSaved    string `json:"interestSaved"`
	FirstInstallment string `json:"firstInstallment"`
	PeakInstallment  string `json:"peakInstallment"`
	LastInstallment  string `json:"lastInstallment"`

	InterestDiffFromBase string `json:"interestDiffFromBase"`
	PaidDiffFromBase     string `json:"paidDiffFromBase"`
	MonthsDiffFromBase   int    `json:"monthsDiffFromBase"`
}

type jsonComparison struct {
	Base            string         `json:"base"`
	Loan            *jsonLoan      `json:"loan,omitempty"`
	Scenarios       []jsonScenario `json:"scenarios"`
	Recommendations []string       `json:"recommendations"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{
		Base:            compSet.BaseScenarioName,
		Scenarios:       []jsonScenario{},
		Recommendations: compSet.Recommendations,
	}
	if doc.Recommendations == nil {
		doc.Recommendations = []string{}
	}

	if base := compSet.BaseResult; base != nil {
		doc.Loan = &jsonLoan{
			Amount:        base.Request.LoanAmount.StringFixed(2),
			InterestRate:  base.Request.InterestRate.String(),
			TermsInMonths: base.Request.TermsInMonths,
		}
		doc.Scenarios = append(doc.Scenarios, toJSONScenario(*base, true))
	}
	for _, alt := range compSet.AlternativeResults {
		doc.Scenarios = append(doc.Scenarios, toJSONScenario(alt, false))
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toJSONScenario(r ComparisonResult, base bool) jsonScenario {
	extras := decimal.Zero
	for _, p := range r.Request.ExtraPayments {
		extras = extras.Add(p.Amount)
	}
	return jsonScenario{
		Name:                 r.ScenarioName,
		Description:          r.Description,
		Base:                 base,
		System:               string(r.Request.System),
		ExtraPayments:        len(r.Request.ExtraPayments),
		ExtraPaymentTotal:    extras.StringFixed(2),
		TotalMonths:          r.Summary.TotalMonths,
		TotalPaid:            r.Summary.TotalPaid.StringFixed(2),
		TotalInterest:        r.Summary.TotalInterest.StringFixed(2),
		InterestSaved:        r.Summary.InterestSaved.StringFixed(2),
		FirstInstallment:     r.FirstInstallment.StringFixed(2),
		PeakInstallment:      r.PeakInstallment.StringFixed(2),
		LastInstallment:      r.LastInstallment.StringFixed(2),
		InterestDiffFromBase: r.InterestDiffFromBase.StringFixed(2),
		PaidDiffFromBase:     r.PaidDiffFromBase.StringFixed(2),
		MonthsDiffFromBase:   r.MonthsDiffFromBase,
	}
}
