package detectors

import (
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Policy holds the per-scan entropy gate settings. Values are taken as-is:
// a negative threshold is accepted and simply flags everything that has any
// entropy, a min length <= 0 never excludes a token.
type Policy struct {
	Enabled   bool
	MinLength int
	Threshold float64
	// IgnoreExt lists file extensions (with or without leading dot) whose
	// files are never tokenized. Matching is case-insensitive.
	IgnoreExt []string
	// Allowlist drops any token containing one of these substrings.
	// Matching is case-sensitive and unanchored.
	Allowlist []string
	// Exclude holds doublestar globs; matching files are skipped.
	Exclude []string
	// Threads bounds per-file workers (0 = GOMAXPROCS).
	Threads int
}

// DefaultPolicy returns the built-in entropy gate settings.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:   true,
		MinLength: DefaultMinLength,
		Threshold: DefaultThreshold,
		IgnoreExt: []string{"png", "jpg", "gif", "mp4", "pdf"},
	}
}

// SkipFile reports whether the whole file at relPath is excluded, either by
// an exclude glob or by its extension.
func (p Policy) SkipFile(relPath string) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	if len(p.Exclude) > 0 && matchAnyGlob(rp, p.Exclude) {
		return true
	}
	return p.ignoredExt(rp)
}

func (p Policy) ignoredExt(rp string) bool {
	base := path.Base(rp)
	// dotfiles such as ".env" have no extension
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return false
	}
	ext := base[i+1:]
	for _, e := range p.IgnoreExt {
		if strings.EqualFold(strings.TrimPrefix(e, "."), ext) {
			return true
		}
	}
	return false
}

// Allowlisted reports whether token contains any allowlist pattern.
func (p Policy) Allowlisted(token string) bool {
	for _, pat := range p.Allowlist {
		if strings.Contains(token, pat) {
			return true
		}
	}
	return false
}

// Score applies min-length, allowlist and entropy gates in that order.
func (p Policy) Score(token string) (bool, float64) {
	if len(token) < p.MinLength {
		return false, 0
	}
	if p.Allowlisted(token) {
		return false, 0
	}
	return Flagged(token, p.MinLength, p.Threshold)
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := path.Base(pathToMatch)
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(trimGlobPrefix(g), pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
