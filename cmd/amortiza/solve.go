package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erickbogarin/amortiza/internal/breakeven"
	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func solveCmd(a *app) *cobra.Command {
	var (
		flags          loanFlags
		name           string
		month          int
		months         []int
		goal           string
		targetMonths   int
		targetInterest string
		strategy       string
		format         string
	)

	cmd := &cobra.Command{
		Use:   "solve [request-file]",
		Short: "Find the smallest extra payment that reaches a goal",
		Long: `Find the smallest single extra payment that pays the loan off within a
number of months, or saves a given amount of interest.

Examples:
  amortiza solve loan.yaml --month 8 --goal payoff --target-months 48
  amortiza solve loan.yaml --months 6,12,24 --goal interest --target-interest 150000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			named, err := collectRequests(args, &flags)
			if err != nil {
				return err
			}
			chosen, err := pickRequest(named, name)
			if err != nil {
				return err
			}

			g, err := breakeven.ParseGoal(goal)
			if err != nil {
				return err
			}
			s, err := domain.ParseExtraPaymentStrategy(strategy)
			if err != nil {
				return err
			}

			req := breakeven.SolveRequest{
				Base:         chosen.Request,
				Month:        month,
				Strategy:     s,
				Goal:         g,
				TargetMonths: targetMonths,
			}
			if targetInterest != "" {
				if req.TargetInterestSaved, err = decimal.NewFromString(targetInterest); err != nil {
					return fmt.Errorf("invalid --target-interest %q", targetInterest)
				}
			}

			solver := breakeven.NewDefaultSolver(a.newSimulator(false, true))
			table := &breakeven.TableFormatter{}
			jsonFmt := &breakeven.JSONFormatter{Pretty: true}

			var out string
			if len(months) > 0 {
				sweep, err := solver.SolveAcrossMonths(cmd.Context(), req, months)
				if err != nil {
					return err
				}
				switch strings.ToLower(format) {
				case "json":
					if out, err = jsonFmt.FormatSweep(sweep); err != nil {
						return err
					}
				case "table", "console", "":
					out = table.FormatSweep(sweep)
				default:
					return errors.New("unknown output format " + format + " (valid: table, json)")
				}
			} else {
				result, err := solver.Solve(cmd.Context(), req)
				if err != nil {
					return err
				}
				switch strings.ToLower(format) {
				case "json":
					if out, err = jsonFmt.Format(result); err != nil {
						return err
					}
				case "table", "console", "":
					out = table.Format(result)
				default:
					return errors.New("unknown output format " + format + " (valid: table, json)")
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Simulation to solve when the file holds several")
	cmd.Flags().IntVar(&month, "month", 1, "Month of the extra payment")
	cmd.Flags().IntSliceVar(&months, "months", nil, "Try several months and report the cheapest")
	cmd.Flags().StringVar(&goal, "goal", "payoff", "Goal: payoff or interest")
	cmd.Flags().IntVar(&targetMonths, "target-months", 0, "Pay off within this many months (goal payoff)")
	cmd.Flags().StringVar(&targetInterest, "target-interest", "", "Save at least this much interest (goal interest)")
	cmd.Flags().StringVar(&strategy, "strategy", "SHORTEN_TERM", "Strategy of the extra payment")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}
