package main

import (
	"fmt"
	"os"

	calc "github.com/erickbogarin/amortiza/internal/calculation"
	"github.com/erickbogarin/amortiza/internal/config"
)

// Prints every re-planning decision the engine takes for each request in a
// file, followed by the months and interest of the resulting schedule.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_replan <request-file>")
		return
	}
	p := config.NewInputParser()
	reqs, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	engine := calc.NewFinancingEngine()
	fmt.Println("Simulation,Month,Strategy,Bucket,ExtraRatio,Extra,Balance,Factor,LinearMonths,RemainingMonths,Amortization,EffectiveTerms")

	for _, n := range reqs {
		name := n.Name
		engine.SetObserver(func(e calc.ReplanEvent) {
			fmt.Printf("%s,%d,%s,%s,%s,%s,%s,%s,%d,%d,%s,%d\n",
				name, e.Month, e.Strategy, e.Bucket,
				e.ExtraRatio.StringFixed(4), e.Extra.StringFixed(2), e.Balance.StringFixed(2),
				e.Factor.String(), e.LinearMonths, e.RemainingMonths,
				e.Amortization.StringFixed(2), e.EffectiveTerms)
		})

		req := n.Request
		cmp, err := engine.ComparePlan(req.LoanAmount, req.InterestRate.ToMonthly().Value,
			req.TermsInMonths, req.System, calc.PlanFromPayments(req.ExtraPayments))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			continue
		}
		fmt.Printf("# %s: %d -> %d months, interest %s -> %s\n", name,
			cmp.SummaryWithoutExtras.TotalMonths, cmp.SummaryWithExtras.TotalMonths,
			cmp.SummaryWithoutExtras.TotalInterest.StringFixed(2), cmp.SummaryWithExtras.TotalInterest.StringFixed(2))
	}
}
