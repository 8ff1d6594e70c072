package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erickbogarin/amortiza/internal/calculation"
	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/erickbogarin/amortiza/internal/history"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// loanFlags describe a single request on the command line
type loanFlags struct {
	loan        string
	annualRate  string
	monthlyRate string
	terms       int
	system      string
	extras      []string
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.loan, "loan", "", "Loan amount")
	cmd.Flags().StringVar(&f.annualRate, "annual-rate", "", "Annual interest rate, e.g. 0.13 or 13%")
	cmd.Flags().StringVar(&f.monthlyRate, "monthly-rate", "", "Monthly interest rate, e.g. 0.01 or 1%")
	cmd.Flags().IntVar(&f.terms, "terms", 0, "Term in months")
	cmd.Flags().StringVar(&f.system, "system", "SAC", "Amortization system (SAC or PRICE)")
	cmd.Flags().StringSliceVar(&f.extras, "extra", nil, "Extra payment as month:amount[:strategy], repeatable")
}

func (f *loanFlags) given() bool {
	return f.loan != ""
}

// document builds a request document from the flags
func (f *loanFlags) document() (config.RequestDocument, error) {
	doc := config.RequestDocument{
		Name:          "command-line",
		TermsInMonths: f.terms,
		System:        f.system,
	}

	loan, err := decimal.NewFromString(f.loan)
	if err != nil {
		return doc, fmt.Errorf("invalid --loan %q", f.loan)
	}
	doc.LoanAmount = loan

	if f.annualRate != "" {
		rate, err := config.ParseRate(f.annualRate)
		if err != nil {
			return doc, fmt.Errorf("invalid --annual-rate: %w", err)
		}
		doc.AnnualRate = config.NewRate(rate)
	}
	if f.monthlyRate != "" {
		rate, err := config.ParseRate(f.monthlyRate)
		if err != nil {
			return doc, fmt.Errorf("invalid --monthly-rate: %w", err)
		}
		doc.MonthlyRate = config.NewRate(rate)
	}

	for _, raw := range f.extras {
		extra, err := parseExtraFlag(raw)
		if err != nil {
			return doc, err
		}
		doc.ExtraPayments = append(doc.ExtraPayments, extra)
	}
	return doc, nil
}

func parseExtraFlag(raw string) (config.ExtraPaymentDocument, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return config.ExtraPaymentDocument{}, fmt.Errorf("invalid --extra %q, want month:amount[:strategy]", raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return config.ExtraPaymentDocument{}, fmt.Errorf("invalid --extra month %q", parts[0])
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return config.ExtraPaymentDocument{}, fmt.Errorf("invalid --extra amount %q", parts[1])
	}
	extra := config.ExtraPaymentDocument{Month: month, Amount: amount}
	if len(parts) == 3 {
		extra.Strategy = strings.TrimSpace(parts[2])
	}
	return extra, nil
}

type runFlags struct {
	loanFlags
	format          string
	outputFile      string
	honorStrategies bool
	debug           bool
	save            bool
}

// collectRequests reads requests from files or, with no files, from the flags
func collectRequests(files []string, f *loanFlags) ([]config.NamedRequest, error) {
	parser := config.NewInputParser()

	if len(files) == 0 {
		if !f.given() {
			return nil, errors.New("give a request file or --loan, --terms and a rate")
		}
		doc, err := f.document()
		if err != nil {
			return nil, err
		}
		req, err := parser.FromDocument(doc)
		if err != nil {
			return nil, err
		}
		return []config.NamedRequest{{Name: doc.Name, Request: *req}}, nil
	}

	var all []config.NamedRequest
	for _, file := range files {
		reqs, err := parser.LoadFromFile(file)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			if r.Name == "" {
				r.Name = file
			}
			all = append(all, r)
		}
	}
	return all, nil
}

// newSimulator builds a simulator from settings, wiring zap into the engine
// when debug is set.
func (a *app) newSimulator(debug, honorStrategies bool) *simulation.Simulator {
	engine := calculation.NewFinancingEngine()
	if debug {
		engine.SetLogger(a.logger.Sugar())
	}
	return simulation.NewSimulator(engine, simulation.Options{
		HonorPaymentStrategies: honorStrategies || a.settings.Simulation.HonorPaymentStrategies,
		Concurrency:            a.settings.Simulation.Concurrency,
	})
}

func (a *app) run(cmd *cobra.Command, files []string, f *runFlags) error {
	formatter := output.GetFormatterByName(f.format)
	if formatter == nil {
		return fmt.Errorf("unsupported format %q (available: %s)", f.format, strings.Join(output.AvailableFormats(), ", "))
	}

	named, err := collectRequests(files, &f.loanFlags)
	if err != nil {
		return err
	}

	if f.debug {
		logger, err := config.NewLogger(a.settings.Logging, "debug")
		if err != nil {
			return err
		}
		a.logger = logger
	}
	sim := a.newSimulator(f.debug, f.honorStrategies)

	reqs := make([]domain.SimulationRequest, len(named))
	for i, n := range named {
		reqs[i] = n.Request
	}

	ctx := cmd.Context()
	results := sim.RunBatch(ctx, reqs)

	sims := make([]output.Simulation, 0, len(results))
	for i, r := range results {
		if r.Err != nil {
			return fmt.Errorf("simulation %s failed: %w", named[i].Name, r.Err)
		}
		sims = append(sims, output.Simulation{Name: named[i].Name, Result: r.Result})
	}

	if f.save {
		if err := a.saveAll(ctx, cmd, sims, sim.Options.HonorPaymentStrategies); err != nil {
			return err
		}
	}

	data, err := formatter.Format(sims)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if f.outputFile != "" {
		if err := os.WriteFile(f.outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.outputFile, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", f.outputFile)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) saveAll(ctx context.Context, cmd *cobra.Command, sims []output.Simulation, honorStrategies bool) error {
	store, err := history.Open(ctx, a.settings.History)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	for _, s := range sims {
		record := domain.NewSimulationRecord(history.NewID(), time.Now().UTC(), s.Result)
		record.HonorPaymentStrategies = honorStrategies
		if err := store.Save(ctx, record); err != nil {
			return fmt.Errorf("failed to save %s: %w", s.Name, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s as %s\n", s.Name, record.ID)
	}
	return nil
}

func simulateCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "simulate [request-file...]",
		Short: "Compare a loan with and without its extra payments",
		Long: "Simulates each request in the given YAML or JSON files, or a single request\n" +
			"described with flags, and prints the savings the extra payments produce.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", "console",
		"Output format: "+strings.Join(output.AvailableFormats(), ", "))
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Write the report to a file")
	cmd.Flags().BoolVar(&f.honorStrategies, "honor-strategies", false, "Apply each extra payment's own strategy instead of always shortening the term")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log every re-plan the engine makes")
	cmd.Flags().BoolVar(&f.save, "save", false, "Store the results in the history backend")
	return cmd
}

func scheduleCmd(a *app) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "schedule [request-file...]",
		Short: "Print the month-by-month schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args, f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", "schedule-csv", "Output format (schedule-csv, console-verbose, json, yaml, html)")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Write the schedules to a file")
	cmd.Flags().BoolVar(&f.honorStrategies, "honor-strategies", false, "Apply each extra payment's own strategy")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log every re-plan the engine makes")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request-file...]",
		Short: "Validate request files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			for _, file := range args {
				reqs, err := parser.LoadFromFile(file)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d simulation(s))\n", file, len(reqs))
			}
			return nil
		},
	}
}
