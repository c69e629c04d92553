package detectors

// MaskMarker replaces short tokens entirely.
const MaskMarker = "***"

const maskSep = "..."

// Mask redacts a flagged token for display. Tokens of 8 bytes or fewer are
// replaced by MaskMarker; longer ones keep their first and last four
// characters.
func Mask(token string) string {
	if len(token) <= 8 {
		return MaskMarker
	}
	r := []rune(token)
	// multi-byte tokens can exceed 8 bytes with 8 or fewer runes
	if len(r) <= 8 {
		return MaskMarker
	}
	return string(r[:4]) + maskSep + string(r[len(r)-4:])
}
