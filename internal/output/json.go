package output

import (
	"encoding/json"
)

// JSONFormatter renders full results, schedules included, as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(sims []Simulation) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(sims, "", "  ")
	}
	return json.Marshal(sims)
}
