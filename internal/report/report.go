package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/lox/handledger/internal/analyzer"
	"github.com/lox/handledger/internal/statistics"
)

// Formats lists the supported output formats.
var Formats = []string{"csv", "json", "yaml", "table"}

// Write renders a run result in the named format.
func Write(w io.Writer, format string, res *analyzer.Result) error {
	switch format {
	case "csv":
		return WriteCSV(w, res.Sequence)
	case "json":
		return WriteJSON(w, NewEnvelope(res))
	case "yaml":
		return WriteYAML(w, NewEnvelope(res))
	case "table":
		return WriteSummary(w, statistics.FromSequence(res.Sequence))
	default:
		return fmt.Errorf("unknown format %q, want one of %v", format, Formats)
	}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}
