package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/erickbogarin/amortiza/internal/history"
	"github.com/erickbogarin/amortiza/internal/output"
	"github.com/erickbogarin/amortiza/internal/simulation"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored simulations",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent simulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(cmd.Context(), a.settings.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No simulations stored")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tSYSTEM\tLOAN\tTERMS\tMONTHS SAVED\tINTEREST SAVED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04"),
					r.Request.System,
					output.FormatMoney(r.Request.LoanAmount),
					r.Request.TermsInMonths,
					r.SummaryWithExtras.MonthsSaved,
					output.FormatMoney(r.SummaryWithExtras.InterestSaved),
				)
			}
			return w.Flush()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Maximum number of simulations")

	var format string
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Regenerate and print a stored simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q", format)
			}

			store, err := history.Open(cmd.Context(), a.settings.History)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			record, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("simulation %s: %w", args[0], err)
			}

			sim := simulation.NewSimulator(nil, simulation.Options{
				HonorPaymentStrategies: record.HonorPaymentStrategies,
				Concurrency:            a.settings.Simulation.Concurrency,
			})
			result, err := sim.Run(cmd.Context(), record.Request)
			if err != nil {
				return err
			}
			data, err := formatter.Format([]output.Simulation{{Name: record.ID, Result: result}})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "console", "Output format")

	cmd.AddCommand(list, show)
	return cmd
}
