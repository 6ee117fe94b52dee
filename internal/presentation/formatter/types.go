package formatter

import (
	"github.com/Arrognz/babycheck/internal/core/stats"
)

// Report is one period's statistics ready for output.
type Report struct {
	Period string `json:"period"`
	stats.Stats
}

// Formatter renders reports to stdout.
type Formatter interface {
	Format(reports []Report) error
}

// New returns the formatter for an output name. Unknown names fall back
// to the table.
func New(output string) Formatter {
	switch output {
	case "json":
		return NewJSONFormatter()
	case "csv":
		return NewCSVFormatter()
	case "summary":
		return NewSummaryFormatter()
	default:
		return NewTableFormatter()
	}
}
