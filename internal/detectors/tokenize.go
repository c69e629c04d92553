package detectors

import "strings"

// Token is a candidate secret and the 1-based line it was found on.
type Token struct {
	Line  int
	Value string
}

const trimSet = "\"'`,;="

// Tokenize splits text into lines, each line into whitespace-separated
// pieces, and strips quotes and assignment punctuation from both ends of each
// piece. Empty pieces are dropped; tokens never span lines.
func Tokenize(text string) []Token {
	var out []Token
	for i, line := range splitLines(text) {
		for _, part := range strings.Fields(line) {
			t := strings.Trim(part, trimSet)
			if t == "" {
				continue
			}
			out = append(out, Token{Line: i + 1, Value: t})
		}
	}
	return out
}

// splitLines breaks on \n, drops a trailing \r per line and does not yield
// an empty final line for text ending in a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
