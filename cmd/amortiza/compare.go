package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erickbogarin/amortiza/internal/compare"
	"github.com/erickbogarin/amortiza/internal/config"
	"github.com/spf13/cobra"
)

// pickRequest selects one request out of a batch. With no name the batch
// must hold exactly one request.
func pickRequest(named []config.NamedRequest, name string) (config.NamedRequest, error) {
	if name == "" {
		if len(named) != 1 {
			return config.NamedRequest{}, fmt.Errorf("%d simulations given, pick one with --name", len(named))
		}
		return named[0], nil
	}
	for _, n := range named {
		if n.Name == name {
			return n, nil
		}
	}
	return config.NamedRequest{}, fmt.Errorf("simulation %q not found", name)
}

func compareCmd(a *app) *cobra.Command {
	var (
		flags     loanFlags
		name      string
		with      string
		format    string
		listTmpls bool
	)

	cmd := &cobra.Command{
		Use:   "compare [request-file]",
		Short: "Compare a loan against SAC/PRICE and strategy variants",
		Long: `Compare a request against what-if variants built from templates.

Examples:
  amortiza compare loan.yaml
  amortiza compare loan.yaml --with sac-reduce,price-shorten,double-extras --format csv
  amortiza compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(a.newSimulator(false, true))

			if listTmpls {
				for _, n := range engine.TemplateRegistry.List() {
					t, _ := engine.TemplateRegistry.Get(n)
					fmt.Fprintf(cmd.OutOrStdout(), "  %-15s %s\n", t.Name, t.Description)
				}
				return nil
			}

			named, err := collectRequests(args, &flags)
			if err != nil {
				return err
			}
			chosen, err := pickRequest(named, name)
			if err != nil {
				return err
			}

			var templates []string
			for _, t := range strings.Split(with, ",") {
				if t = strings.TrimSpace(t); t != "" {
					templates = append(templates, t)
				}
			}

			compSet, err := engine.Compare(cmd.Context(), chosen.Request, compare.CompareOptions{
				BaseScenarioName: chosen.Name,
				Templates:        templates,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			default:
				return errors.New("unknown output format " + format + " (valid: table, compact, csv, json)")
			}
			if err != nil {
				return fmt.Errorf("failed to format comparison: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Simulation to compare when the file holds several")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated templates (default "+strings.Join(compare.DefaultTemplates, ",")+")")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTmpls, "list-templates", false, "List the available templates")
	return cmd
}
