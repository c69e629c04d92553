package types

import (
	"fmt"
	"strings"
)

// Severity is a coarse-grained risk level for a finding. Levels are totally
// ordered so they can be compared against a fail-on threshold.
type Severity int

const (
	SevLow Severity = iota
	SevMed
	SevHigh
	SevCritical
)

var severityNames = [...]string{"low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < SevLow || s > SevCritical {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity maps a case-insensitive level name to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SevLow, nil
	case "medium", "med":
		return SevMed, nil
	case "high":
		return SevHigh, nil
	case "critical":
		return SevCritical, nil
	}
	return SevLow, fmt.Errorf("unknown severity %q (want low|medium|high|critical)", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	if s < SevLow || s > SevCritical {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Location points at a repo-relative file and, optionally, a 1-based line.
type Location struct {
	File string `json:"file"`
	Line *int   `json:"line,omitempty"`
}

// At builds a Location with a line number.
func At(file string, line int) *Location {
	return &Location{File: file, Line: &line}
}

func (l Location) String() string {
	if l.Line == nil {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, *l.Line)
}

// Finding describes one issue reported by a check. The message may embed a
// masked token but never the raw value.
type Finding struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Severity    Severity  `json:"severity"`
	Location    *Location `json:"location,omitempty"`
	Tags        []string  `json:"tags"`
	Fingerprint string    `json:"fingerprint,omitempty"`
}

// HasTag reports whether tag is already present on the finding.
func (f Finding) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WithTag returns a copy of f carrying tag. The receiver's tag slice is never
// modified, so findings handed out earlier stay unchanged.
func (f Finding) WithTag(tag string) Finding {
	if f.HasTag(tag) {
		return f
	}
	tags := make([]string, 0, len(f.Tags)+1)
	tags = append(tags, f.Tags...)
	f.Tags = append(tags, tag)
	return f
}

// Report is the ordered result of a run: findings in check order, then in
// emission order within each check.
type Report struct {
	Findings   []Finding `json:"findings"`
	DurationMS int64     `json:"duration_ms"`
}

// WorstSeverity returns the highest severity among the findings, or false
// when the report is empty.
func (r Report) WorstSeverity() (Severity, bool) {
	if len(r.Findings) == 0 {
		return SevLow, false
	}
	worst := r.Findings[0].Severity
	for _, f := range r.Findings[1:] {
		if f.Severity > worst {
			worst = f.Severity
		}
	}
	return worst, true
}

// CountBySeverity tallies findings per level.
func (r Report) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int, 4)
	for _, f := range r.Findings {
		out[f.Severity]++
	}
	return out
}
