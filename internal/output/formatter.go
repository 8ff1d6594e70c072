package output

import (
	"sort"
	"strings"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Simulation is a named result as handed to a formatter
type Simulation struct {
	Name   string                   `json:"name" yaml:"name"`
	Result *domain.SimulationResult `json:"result" yaml:"result"`
}

// Formatter renders simulation results in one output format
type Formatter interface {
	Name() string
	Format(sims []Simulation) ([]byte, error)
}

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"verbose":  "console-verbose",
	"table":    "console",
	"schedule": "schedule-csv",
	"yml":      "yaml",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleFormatter{Verbose: true})
	register(JSONFormatter{Pretty: true})
	register(YAMLFormatter{})
	register(CSVSummarizer{})
	register(ScheduleCSVFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName resolves a formatter by name or alias; nil when unknown
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	return formatters[key]
}

// AvailableFormats lists the registered formatter names
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with thousands separators and two decimals
func FormatMoney(amount decimal.Decimal) string {
	return printer.Sprintf("%.2f", amount.Round(2).InexactFloat64())
}

// FormatRate renders an interest rate as a percentage with its period
func FormatRate(rate domain.InterestRate) string {
	return rate.String()
}

func displayName(sim Simulation, i int) string {
	if sim.Name != "" {
		return sim.Name
	}
	return "simulation " + printer.Sprintf("%d", i+1)
}
