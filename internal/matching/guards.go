package matching

import "regexp"

// guardRadius is the window inspected around a span for URL/email noise
const guardRadius = 24

var (
	domainPattern = regexp.MustCompile(`(?i)[a-z0-9-]+\.(com|io|org|net|dev|app)`)
	emailPattern  = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
)

// spanLooksClean rejects candidate spans that sit inside URLs or email
// addresses, and short matches glued to neighboring letters (so "ml" never
// fires inside "html" spelled oddly, or a name fragment).
func spanLooksClean(text string, start, end int, matched string) bool {
	if matched == "" {
		return false
	}
	if start < 0 || end > len(text) {
		return false
	}

	windowStart := start - guardRadius
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := end + guardRadius
	if windowEnd > len(text) {
		windowEnd = len(text)
	}
	window := text[windowStart:windowEnd]

	if domainPattern.MatchString(window) {
		return false
	}
	if emailPattern.MatchString(window) {
		return false
	}

	if len(matched) <= 3 {
		if start > 0 && isLetter(text[start-1]) {
			return false
		}
		if end < len(text) && isLetter(text[end]) {
			return false
		}
	}

	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
