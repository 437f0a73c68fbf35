package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/sjson"
)

// MockClient answers every prompt locally and deterministically. Its standard
// rewrite drops a few boilerplate openers; the other variants bracket it.
type MockClient struct{}

var mockBoilerplate = []string{"综上所述，", "众所周知，", "总而言之，", "毋庸置疑，", "不可否认，"}

func (MockClient) Complete(_ context.Context, _ string, user string) (string, error) {
	switch {
	case strings.Contains(user, `"conservative"`):
		input := section(user, "INPUT: ", "\nTASK:")
		standard := input
		for _, b := range mockBoilerplate {
			standard = strings.ReplaceAll(standard, b, "")
		}
		return buildJSON(
			field{"conservative", input},
			field{"standard", standard},
			field{"enhanced", standard},
		)
	case strings.Contains(user, `"documentSummary"`):
		input := section(user, "INPUT: ", "\nTASK:")
		summary := []rune(strings.Join(strings.Fields(input), " "))
		if len(summary) > 60 {
			summary = summary[:60]
		}
		return buildJSON(
			field{"documentSummary", string(summary)},
			field{"sectionSummaries", []string{}},
		)
	default:
		return buildJSON(
			field{"averageSentenceLength", 32},
			field{"lexicalComplexity", 0.6},
			field{"passiveVoicePercentage", 15},
			field{"commonTransitions", []string{"然而", "因此", "此外"}},
			field{"tone", "严谨客观"},
			field{"structure", "总分结构"},
		)
	}
}

type field struct {
	path  string
	value any
}

func buildJSON(fields ...field) (string, error) {
	out := "{}"
	for _, f := range fields {
		var err error
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", fmt.Errorf("mock response %s: %w", f.path, err)
		}
	}
	return out, nil
}

func section(s, startMarker, endMarker string) string {
	i := strings.Index(s, startMarker)
	if i < 0 {
		return ""
	}
	s = s[i+len(startMarker):]
	if j := strings.Index(s, endMarker); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
