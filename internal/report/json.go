package report

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/veto-dev/veto/internal/types"
)

// Fingerprint is a stable identifier for a finding across runs over the same
// content: a hex xxhash64 of check ID, path, line, title and occurrence, the
// 0-based index of the finding among those sharing the other four fields.
func Fingerprint(f types.Finding, occurrence int) string {
	d := xxhash.New()
	_, _ = d.WriteString(fingerprintKey(f))
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(strconv.Itoa(occurrence))
	return fastHex(d.Sum64())
}

// Fingerprints returns one fingerprint per finding, numbering repeated
// findings on the same line in report order.
func Fingerprints(findings []types.Finding) []string {
	out := make([]string, len(findings))
	seen := map[string]int{}
	for i, f := range findings {
		key := fingerprintKey(f)
		out[i] = Fingerprint(f, seen[key])
		seen[key]++
	}
	return out
}

func fingerprintKey(f types.Finding) string {
	var b strings.Builder
	b.WriteString(f.ID)
	b.WriteString("|")
	if f.Location != nil {
		b.WriteString(f.Location.File)
		b.WriteString("|")
		if f.Location.Line != nil {
			b.WriteString(strconv.Itoa(*f.Location.Line))
		}
	}
	b.WriteString("|")
	b.WriteString(f.Title)
	return b.String()
}

func fastHex(sum uint64) string {
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// WithFingerprints returns a copy of rep whose findings carry fingerprints.
func WithFingerprints(rep types.Report) types.Report {
	out := types.Report{DurationMS: rep.DurationMS, Findings: make([]types.Finding, len(rep.Findings))}
	fps := Fingerprints(rep.Findings)
	for i, f := range rep.Findings {
		f.Fingerprint = fps[i]
		out.Findings[i] = f
	}
	return out
}

// WriteJSON pretty-prints the report with fingerprints.
func WriteJSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(WithFingerprints(rep))
}
