package normalize

import "strings"

// ParseCodeList parses the bracketed, comma-separated textual form the
// lookup service uses for code sets, e.g. "[99213, 99214]". Brackets are
// optional, entries are trimmed, and empty entries are dropped, so
// "[99213,99214]" and "[99213, 99214]" parse identically.
func ParseCodeList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return codes
}

// FormatCodeList renders a code set back into the bracketed text form.
// ParseCodeList(FormatCodeList(x)) returns x for any trimmed, non-empty x.
func FormatCodeList(codes []string) string {
	return "[" + strings.Join(codes, ", ") + "]"
}
