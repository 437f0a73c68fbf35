package fidelity

import (
	"fmt"
	"strings"

	"stylemirror/internal/metrics"
	"stylemirror/internal/segment"
)

type AlertType string

const (
	NumberLoss    AlertType = "number_loss"
	AcronymChange AlertType = "acronym_change"
	UnitLoss      AlertType = "unit_loss"
)

// maxAlertsPerCategory caps alerts for numbers and for acronyms separately.
const maxAlertsPerCategory = 5

// Alert describes one invariant token lost in the rewrite. SentenceIndex is
// -1 when the token cannot be located in the draft.
type Alert struct {
	Type          AlertType `json:"type"`
	SentenceIndex int       `json:"sentenceIndex"`
	Detail        string    `json:"detail"`
}

type Guardrails struct {
	NumberRetentionRate  float64 `json:"numberRetentionRate"`
	AcronymRetentionRate float64 `json:"acronymRetentionRate"`
	Alerts               []Alert `json:"alerts"`
}

// Calculate compares invariant tokens of the draft with the rewritten text.
func Calculate(draftText, standardText string) Guardrails {
	draftNumbers := ExtractNumbers(draftText)
	draftAcronyms := ExtractAcronyms(draftText)
	missingNumbers := missing(draftNumbers, ExtractNumbers(standardText))
	missingAcronyms := missing(draftAcronyms, ExtractAcronyms(standardText))

	sentences := segment.Split(draftText)
	alerts := []Alert{}
	for i, tok := range missingNumbers {
		if i >= maxAlertsPerCategory {
			break
		}
		typ, label := NumberLoss, "number"
		if hasUnit(tok) {
			typ, label = UnitLoss, "unit value"
		}
		alerts = append(alerts, Alert{
			Type:          typ,
			SentenceIndex: locate(sentences, tok),
			Detail:        fmt.Sprintf("missing %s: %s", label, tok),
		})
	}
	for i, tok := range missingAcronyms {
		if i >= maxAlertsPerCategory {
			break
		}
		alerts = append(alerts, Alert{
			Type:          AcronymChange,
			SentenceIndex: locate(sentences, tok),
			Detail:        fmt.Sprintf("missing acronym: %s", tok),
		})
	}

	return Guardrails{
		NumberRetentionRate:  retention(len(draftNumbers), len(missingNumbers)),
		AcronymRetentionRate: retention(len(draftAcronyms), len(missingAcronyms)),
		Alerts:               alerts,
	}
}

// retention is 100 for an empty source set.
func retention(total, lost int) float64 {
	if total == 0 {
		return 100
	}
	return metrics.Round(100*float64(total-lost)/float64(total), 1)
}

func missing(original, rewritten []string) []string {
	kept := make(map[string]struct{}, len(rewritten))
	for _, tok := range rewritten {
		kept[tok] = struct{}{}
	}
	out := []string{}
	for _, tok := range original {
		if _, ok := kept[tok]; !ok {
			out = append(out, tok)
		}
	}
	return out
}

// locate finds the first sentence containing tok. Number tokens are
// lower-cased, so a case-insensitive match is tried as well.
func locate(sentences []segment.Sentence, tok string) int {
	for _, s := range sentences {
		if strings.Contains(s.Text, tok) || strings.Contains(strings.ToLower(s.Text), tok) {
			return s.Index
		}
	}
	return -1
}
