package textnorm

import (
	"regexp"
	"strings"
)

var multiNewLine = regexp.MustCompile(`\n{3,}`)
var multiSpace = regexp.MustCompile(`[ \t]+`)
var headingLine = regexp.MustCompile(`^#+\s`)

// Normalize canonicalizes line endings and whitespace. It is total and idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = multiNewLine.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsHeading reports whether s starts like a Markdown heading ("#", "##", ... followed by whitespace).
func IsHeading(s string) bool {
	return headingLine.MatchString(s)
}

// BodyText normalizes text and drops every Markdown heading line.
func BodyText(text string) string {
	lines := strings.Split(Normalize(text), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsHeading(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
