package sqlexec

import (
	"regexp"
	"strings"
)

var (
	openFenceRe  = regexp.MustCompile("(?mi)^[ \t]*```sql[ \t]*")
	closeFenceRe = regexp.MustCompile("(?m)```[ \t]*$")
)

// Sanitize strips markdown code fences and surrounding whitespace from model
// output, leaving bare SQL. Already-clean input passes through unchanged, so
// sanitizing twice equals sanitizing once.
func Sanitize(raw string) string {
	s := openFenceRe.ReplaceAllString(raw, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
