package promptbuild

import (
	"regexp"
	"strings"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	newlineRunRe  = regexp.MustCompile(`[\r\n]+`)
)

// Sanitize strips script-tag sequences and non-printable control characters
// from s. Idempotent: re-sanitizing sanitized text is a no-op. Applied to
// every string input before it reaches a prompt or a persisted store.
func Sanitize(s string) string {
	for {
		next := scriptBlockRe.ReplaceAllString(s, "")
		next = scriptTagRe.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	return stripControl(s)
}

// CollapseNewlines folds runs of CR/LF into a single space and trims.
// Keeps user text from injecting fake role markers or structural breaks
// into the prompt.
func CollapseNewlines(s string) string {
	return strings.TrimSpace(newlineRunRe.ReplaceAllString(s, " "))
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
