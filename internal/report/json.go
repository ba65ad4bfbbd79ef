package report

import (
	"encoding/json"
	"io"

	"github.com/sqlperf/sqlperf/internal/executor"
)

// Report is the JSON document shape for a whole run.
type Report struct {
	Results []executor.Result `json:"results"`
	Summary executor.Summary  `json:"summary"`
}

func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
