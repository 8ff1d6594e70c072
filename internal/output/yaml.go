package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders full results as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(sims []Simulation) ([]byte, error) {
	return yaml.Marshal(sims)
}
