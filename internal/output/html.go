package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/erickbogarin/amortiza/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": FormatMoney,
	"rate":  FormatRate,
	"describe": func(s domain.AmortizationSystem) string {
		return s.Description()
	},
	"name": displayName,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(sims []Simulation) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, sims); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
