package normalize

import "strings"

// Code trims surrounding whitespace from a procedure code. Codes are
// compared by exact string equality after this, so no case folding.
func Code(s string) string {
	return strings.TrimSpace(s)
}

// Modifier canonicalizes one procedure modifier: absent (nil) becomes "",
// everything else is trimmed and lower-cased. Modifiers are never nil
// after normalization.
func Modifier(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

// Ident trims a nullable identity field (payer control number, NPI,
// service date), mapping nil to "".
func Ident(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
