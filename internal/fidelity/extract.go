package fidelity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alternatives are tried left to right at each position, so earlier
// (more specific) forms win over bare integers.
var numberPattern = regexp.MustCompile(strings.Join([]string{
	`\d+(?:\.\d+)?\s?[%％‰]`,
	`\d+(?:\.\d+)?[eE][+-]?\d+`,
	`\d+(?:\.\d+)?\s?[×xX]\s?10\^?[-−]?\d+`,
	`\d+(?:\.\d+)?\s?(?:` + unitAlternation + `)\b`,
	`\d+(?:\.\d+)?\s?(?:℃|°C|°)`,
	`\d+\.\d+`,
	`\d{2,}`,
}, "|"))

const unitAlternation = `kHz|MHz|GHz|Hz|TB|GB|MB|KB|kb|nm|μm|um|mm|cm|km|kg|mg|ms|μs|ns|kW|mW|W|mAh|mA|kV|mV|V|dB|ppm|FLOPs|fps|s|m|g|K|A`

var trailingZeros = regexp.MustCompile(`(\d)\.0{1,2}(\D*)$`)

var acronymPattern = regexp.MustCompile(`\b(?:` + strings.Join([]string{
	`[A-Z][A-Za-z0-9]*(?:-[A-Za-z0-9]+)+`,
	`[A-Z]{2,}[0-9]*`,
	`[A-Z]?[a-z]+[A-Z][A-Za-z0-9]*`,
}, "|") + `)\b`)

var acronymStoplist = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "These": {}, "Those": {}, "It": {}, "In": {},
	"On": {}, "For": {}, "And": {}, "But": {}, "We": {}, "Our": {}, "An": {}, "To": {},
	"Of": {}, "With": {}, "As": {}, "At": {}, "By": {}, "Is": {}, "Are": {},
}

// ExtractNumbers returns the unique normalized numeric tokens of text in
// order of first appearance. Digits glued to an identifier (ResNet-50, x86)
// belong to that identifier and are skipped.
func ExtractNumbers(text string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, loc := range numberPattern.FindAllStringIndex(text, -1) {
		if attachedToIdentifier(text, loc[0]) {
			continue
		}
		tok := normalizeNumber(text[loc[0]:loc[1]])
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// ExtractAcronyms returns unique all-caps, CamelCase and hyphenated model-name
// tokens in order of first appearance.
func ExtractAcronyms(text string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, tok := range acronymPattern.FindAllString(text, -1) {
		if isStopword(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func normalizeNumber(tok string) string {
	tok = strings.ToLower(strings.Join(strings.Fields(tok), ""))
	tok = strings.ReplaceAll(tok, "％", "%")
	return trailingZeros.ReplaceAllString(tok, "$1$2")
}

// hasUnit reports whether a normalized number token carries a physical unit.
// Percentages, scientific notation and plain numbers all end in a digit or %.
func hasUnit(tok string) bool {
	last, _ := utf8.DecodeLastRuneInString(tok)
	return unicode.IsLetter(last) || last == '℃' || last == '°'
}

func isStopword(tok string) bool {
	if _, ok := acronymStoplist[tok]; ok {
		return true
	}
	if len(tok) > 1 {
		title := tok[:1] + strings.ToLower(tok[1:])
		if _, ok := acronymStoplist[title]; ok && strings.ToUpper(tok) == tok {
			return true
		}
	}
	return false
}

// attachedToIdentifier reports whether the digits at start continue an
// identifier such as ResNet-50, x86 or v1.5. The run of ASCII word characters
// and joiners before start must contain a letter, so the right operand of a
// numeric range (10-20%, 2019-2023) still counts as a number.
func attachedToIdentifier(text string, start int) bool {
	if start == 0 {
		return false
	}
	prev := text[start-1]
	if !isASCIIAlnum(prev) && !isJoiner(prev) {
		return false
	}
	if isJoiner(prev) && (start < 2 || !isASCIIAlnum(text[start-2])) {
		return false
	}
	for i := start - 1; i >= 0; i-- {
		b := text[i]
		if !isASCIIAlnum(b) && !isJoiner(b) {
			break
		}
		if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' {
			return true
		}
	}
	return false
}

func isJoiner(b byte) bool {
	return b == '-' || b == '_' || b == '.'
}

func isASCIIAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
