package segment

import (
	"strings"
	"unicode/utf8"

	"stylemirror/internal/textnorm"
)

// Sentence is one retained sentence; Index counts retained sentences only.
type Sentence struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

const minSentenceRunes = 2

// Split segments text after each Chinese terminal mark (。？！). The full-width
// semicolon is not a boundary.
func Split(text string) []Sentence {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return nil
	}

	out := []Sentence{}
	start := 0
	for i, r := range normalized {
		if !isTerminal(r) {
			continue
		}
		end := i + utf8.RuneLen(r)
		out = appendPart(out, normalized[start:end])
		start = end
	}
	if start < len(normalized) {
		out = appendPart(out, normalized[start:])
	}
	return out
}

// appendPart drops the heading lines that open a part, so the first sentence
// of a section survives while a part made only of headings is discarded.
func appendPart(out []Sentence, part string) []Sentence {
	trimmed := strings.TrimSpace(stripLeadingHeadings(part))
	if trimmed == "" || textnorm.IsHeading(trimmed) {
		return out
	}
	if utf8.RuneCountInString(trimmed) < minSentenceRunes {
		return out
	}
	return append(out, Sentence{Text: trimmed, Index: len(out)})
}

func stripLeadingHeadings(part string) string {
	rest := strings.TrimSpace(part)
	for textnorm.IsHeading(rest) {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[i+1:])
	}
	return rest
}

func isTerminal(r rune) bool {
	switch r {
	case '。', '？', '！':
		return true
	}
	return false
}
