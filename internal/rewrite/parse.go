package rewrite

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// extractJSON trims code fences and prose around the first JSON object.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyResponse
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no object found", ErrMalformedResponse)
	}
	s = s[start : end+1]
	if !gjson.Valid(s) {
		return "", fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	return s, nil
}

func parseStyleGuide(raw string) (StyleGuide, error) {
	js, err := extractJSON(raw)
	if err != nil {
		return StyleGuide{}, err
	}
	res := gjson.Parse(js)
	guide := StyleGuide{
		AverageSentenceLength:  res.Get("averageSentenceLength").Float(),
		LexicalComplexity:      res.Get("lexicalComplexity").Float(),
		PassiveVoicePercentage: res.Get("passiveVoicePercentage").Float(),
		Tone:                   res.Get("tone").String(),
		Structure:              res.Get("structure").String(),
		CommonTransitions:      []string{},
	}
	for _, t := range res.Get("commonTransitions").Array() {
		if s := strings.TrimSpace(t.String()); s != "" {
			guide.CommonTransitions = append(guide.CommonTransitions, s)
		}
	}
	return guide, nil
}

func parseDocumentContext(raw string) (DocumentContext, error) {
	js, err := extractJSON(raw)
	if err != nil {
		return DocumentContext{}, err
	}
	res := gjson.Parse(js)
	ctx := DocumentContext{
		DocumentSummary:  res.Get("documentSummary").String(),
		SectionSummaries: []string{},
	}
	for _, s := range res.Get("sectionSummaries").Array() {
		ctx.SectionSummaries = append(ctx.SectionSummaries, s.String())
	}
	return ctx, nil
}

// parseVariants requires the standard variant; missing conservative or
// enhanced variants fall back to standard.
func parseVariants(raw string) (Variants, error) {
	js, err := extractJSON(raw)
	if err != nil {
		return Variants{}, err
	}
	res := gjson.Parse(js)
	v := Variants{
		Conservative: strings.TrimSpace(res.Get("conservative").String()),
		Standard:     strings.TrimSpace(res.Get("standard").String()),
		Enhanced:     strings.TrimSpace(res.Get("enhanced").String()),
	}
	if v.Standard == "" {
		return Variants{}, fmt.Errorf("%w: standard variant missing", ErrMalformedResponse)
	}
	if v.Conservative == "" {
		v.Conservative = v.Standard
	}
	if v.Enhanced == "" {
		v.Enhanced = v.Standard
	}
	return v, nil
}
