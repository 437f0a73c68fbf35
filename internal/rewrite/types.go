package rewrite

import (
	"context"
	"errors"
)

var (
	ErrEmptyResponse     = errors.New("llm returned an empty response")
	ErrMalformedResponse = errors.New("llm response is not the expected JSON")
)

// Client is the opaque completion backend.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// StyleGuide is produced by the LLM from the sample; numeric ranges are not validated.
type StyleGuide struct {
	AverageSentenceLength  float64  `json:"averageSentenceLength"`
	LexicalComplexity      float64  `json:"lexicalComplexity"`
	PassiveVoicePercentage float64  `json:"passiveVoicePercentage"`
	CommonTransitions      []string `json:"commonTransitions"`
	Tone                   string   `json:"tone"`
	Structure              string   `json:"structure"`
}

type DocumentContext struct {
	DocumentSummary  string   `json:"documentSummary"`
	SectionSummaries []string `json:"sectionSummaries"`
}

// Variants are the three rewrites of one chunk or of the whole document.
type Variants struct {
	Conservative string `json:"conservative"`
	Standard     string `json:"standard"`
	Enhanced     string `json:"enhanced"`
}

// Settings configures a concrete client.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
