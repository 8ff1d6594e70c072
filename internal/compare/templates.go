package compare

import (
	"sort"
	"strings"

	"github.com/erickbogarin/amortiza/internal/domain"
	"github.com/shopspring/decimal"
)

// Template is a named chain of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []RequestTransform
}

// TemplateRegistry manages the what-if templates a comparison can apply
type TemplateRegistry struct {
	templates map[string]Template
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds a template, replacing any template of the same name
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns the registered template names in order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTemplates are applied when a comparison names none. PRICE ignores
// the extra payment strategy, so only one PRICE variant is useful.
var DefaultTemplates = []string{"sac-shorten", "sac-reduce", "price-shorten"}

// CreateBuiltInTemplates returns the registry of built-in what-if templates
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	sac := SwitchSystem{System: domain.ConstantAmortization}
	price := SwitchSystem{System: domain.ConstantInstallment}
	shorten := SetStrategy{Strategy: domain.ShortenTerm}
	reduce := SetStrategy{Strategy: domain.ReduceInstallment}

	registry.Register(Template{
		Name:        "sac-shorten",
		Description: "SAC, extras shorten the term",
		Transforms:  []RequestTransform{sac, shorten},
	})
	registry.Register(Template{
		Name:        "sac-reduce",
		Description: "SAC, extras lower the installments",
		Transforms:  []RequestTransform{sac, reduce},
	})
	registry.Register(Template{
		Name:        "price-shorten",
		Description: "PRICE, extras shorten the term",
		Transforms:  []RequestTransform{price, shorten},
	})
	registry.Register(Template{
		Name:        "price-reduce",
		Description: "PRICE, extras marked to lower the installments",
		Transforms:  []RequestTransform{price, reduce},
	})
	registry.Register(Template{
		Name:        "double-extras",
		Description: "Every extra payment doubled",
		Transforms:  []RequestTransform{ScaleExtras{Factor: decimal.NewFromInt(2)}},
	})
	registry.Register(Template{
		Name:        "half-extras",
		Description: "Every extra payment halved",
		Transforms:  []RequestTransform{ScaleExtras{Factor: decimal.RequireFromString("0.5")}},
	})
	registry.Register(Template{
		Name:        "no-extras",
		Description: "No extra payments",
		Transforms:  []RequestTransform{DropExtras{}},
	})

	return registry
}
