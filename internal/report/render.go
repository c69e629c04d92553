package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/veto-dev/veto/internal/types"
)

type PrintOptions struct {
	NoColor bool
}

var (
	sevCriticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sevHighStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// ColorEnabled reports whether f is a terminal and color was not disabled.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PrintText writes the compact human-readable report.
func PrintText(w io.Writer, rep types.Report, opts PrintOptions) {
	if len(rep.Findings) == 0 {
		fmt.Fprintf(w, "OK (no findings) — %dms\n", rep.DurationMS)
		return
	}
	fmt.Fprintf(w, "Found %d issue(s) — %dms\n", len(rep.Findings), rep.DurationMS)
	for _, f := range rep.Findings {
		sev := strings.ToUpper(f.Severity.String())
		if !opts.NoColor {
			sev = colorSeverity(f.Severity, sev)
		}
		fmt.Fprintf(w, "- [%s] %s @ %s\n", sev, f.Title, location(f))
		fmt.Fprintf(w, "  %s\n", f.Message)
	}
}

// PrintTable writes findings as a bordered table followed by a summary.
func PrintTable(w io.Writer, rep types.Report, opts PrintOptions) error {
	if len(rep.Findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "CHECK", "LOCATION", "MESSAGE")
		for _, f := range rep.Findings {
			sev := f.Severity.String()
			if !opts.NoColor {
				sev = colorSeverity(f.Severity, sev)
			}
			if err := table.Append(sev, f.ID, location(f), f.Message); err != nil {
				return fmt.Errorf("table row: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	counts := rep.CountBySeverity()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		len(rep.Findings), counts[types.SevCritical], counts[types.SevHigh], counts[types.SevMed], counts[types.SevLow])
	fmt.Fprintf(w, "Scan duration: %dms\n", rep.DurationMS)
	return nil
}

func location(f types.Finding) string {
	if f.Location == nil {
		return "-"
	}
	return f.Location.String()
}

func colorSeverity(s types.Severity, label string) string {
	switch s {
	case types.SevCritical:
		return sevCriticalStyle.Render(label)
	case types.SevHigh:
		return sevHighStyle.Render(label)
	case types.SevMed:
		return sevMedStyle.Render(label)
	default:
		return sevLowStyle.Render(label)
	}
}
