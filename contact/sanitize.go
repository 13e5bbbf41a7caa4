package contact

import "strings"

// MaxFieldLength is the limit, in characters, of every stored field.
const MaxFieldLength = 2000

// CleanText turns an untrusted form value into a single-line string of at
// most MaxFieldLength characters. Non-string values become "".
func CleanText(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, MaxFieldLength)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
