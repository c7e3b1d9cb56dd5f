package interfaces

import "strings"

// substitutions maps characters outside the report's constrained character
// set onto safe equivalents. Long dashes, the euro sign and ordinal markers
// show up routinely in cadastral text.
var substitutions = map[rune]string{
	'—': "-",   // em dash
	'–': "-",   // en dash
	'−': "-",   // minus sign
	'€': "EUR", // euro sign
	'º': "o.",  // masculine ordinal
	'ª': "a.",  // feminine ordinal
	'“': `"`,
	'”': `"`,
	'‘': "'",
	'’': "'",
	'…': "...",
	'\u00a0': " ", // non-breaking space
	'•': "-",
}

// SanitizeText normalizes a text field for report layout. Every rune outside
// the target set is substituted, never rejected: rendering must always
// succeed given a valid conclusion.
func SanitizeText(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if replacement, ok := substitutions[r]; ok {
			b.WriteString(replacement)
			continue
		}
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20:
			// drop other control characters
		case r <= 0xFF:
			b.WriteRune(r)
		default:
			b.WriteRune('?')
		}
	}
	return b.String()
}
