package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/qehealth/brisk/internal/analyzer"
	"github.com/qehealth/brisk/internal/risk"
)

// Formatter renders an analysis result.
type Formatter interface {
	Format(result *analyzer.Result, w io.Writer) error
}

// Mode selects the output rendering.
type Mode int

const (
	ModeStandard Mode = iota // human-readable summary
	ModeQuiet                // one-line summary for hooks
	ModeJSON                 // machine-readable
)

// NewFormatter returns the formatter for a mode.
func NewFormatter(mode Mode) Formatter {
	switch mode {
	case ModeQuiet:
		return &QuietFormatter{}
	case ModeJSON:
		return &JSONFormatter{}
	default:
		return &StandardFormatter{}
	}
}

// DefaultMode picks JSON when stdout is not a terminal, so piping into
// dashboards or jq needs no flag.
func DefaultMode() Mode {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeStandard
	}
	return ModeJSON
}

// JSONFormatter emits the full result object.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(result *analyzer.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// QuietFormatter emits one line, suitable for pre-commit hooks.
type QuietFormatter struct{}

func (f *QuietFormatter) Format(result *analyzer.Result, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s: score %d (%s), %d components\n",
		levelIcon(result.Risk.Level), result.App, result.Risk.Score, result.Risk.Level,
		len(result.Impact.AffectedComponents))
	return err
}

// StandardFormatter emits the full human-readable report.
type StandardFormatter struct{}

func (f *StandardFormatter) Format(result *analyzer.Result, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Blast radius for %s\n", result.App)
	fmt.Fprintf(&b, "%s Risk: %d/100 (%s)\n", levelIcon(result.Risk.Level), result.Risk.Score, result.Risk.Level)
	fmt.Fprintf(&b, "   %s\n\n", result.Risk.Description)

	fmt.Fprintf(&b, "Changed files:\n")
	for _, file := range result.ChangedFiles {
		if file.Exists {
			fmt.Fprintf(&b, "   %-50s [%s]\n", file.ResolvedPath, file.MatchType)
			continue
		}
		fmt.Fprintf(&b, "   %-50s [unresolved]\n", file.RequestedPath)
		for _, suggestion := range file.Suggestions {
			fmt.Fprintf(&b, "      did you mean %s?\n", suggestion)
		}
	}

	fmt.Fprintf(&b, "\nImpact:\n")
	fmt.Fprintf(&b, "   components:   %s\n", joinOrNone(result.Impact.AffectedComponents))
	fmt.Fprintf(&b, "   tests:        %s\n", joinOrNone(result.Impact.AffectedTests))
	fmt.Fprintf(&b, "   integrations: %s\n", joinOrNone(result.Impact.AffectedIntegrations))
	fmt.Fprintf(&b, "   dependencies: %d direct, %d transitive\n",
		result.Impact.DirectDependencies, result.Impact.TransitiveDependencies)

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "   [%s] %s: %s (run: %s)\n",
				rec.Priority, rec.Category, rec.Recommendation, strings.Join(rec.TestTypes, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func levelIcon(level risk.Level) string {
	switch level {
	case risk.LevelCritical:
		return "🔴"
	case risk.LevelHigh:
		return "🟠"
	case risk.LevelMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
