package metrics

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
)

// ConnectorCategory names a rhetorical relation signalled by a connector word.
type ConnectorCategory string

const (
	Causal      ConnectorCategory = "causal"
	Adversative ConnectorCategory = "adversative"
	Additive    ConnectorCategory = "additive"
	Emphatic    ConnectorCategory = "emphatic"
)

// ConnectorCategories is the fixed reporting order.
var ConnectorCategories = []ConnectorCategory{Causal, Adversative, Additive, Emphatic}

//go:embed lexicon.json
var lexiconJSON []byte

// Lexicon holds the closed word lists the extractor counts against.
type Lexicon struct {
	Connectors map[ConnectorCategory][]string
	Templates  []*regexp.Regexp
}

type lexiconFile struct {
	Connectors map[ConnectorCategory][]string `json:"connectors"`
	Templates  []string                       `json:"templates"`
}

var builtin = mustParseLexicon(lexiconJSON)

// DefaultLexicon returns the built-in Chinese academic lexicon. Each call
// returns a fresh value so callers may extend it without sharing state.
func DefaultLexicon() Lexicon {
	out := Lexicon{
		Connectors: make(map[ConnectorCategory][]string, len(builtin.Connectors)),
		Templates:  append([]*regexp.Regexp(nil), builtin.Templates...),
	}
	for cat, words := range builtin.Connectors {
		out.Connectors[cat] = append([]string(nil), words...)
	}
	return out
}

// ParseLexicon reads a lexicon in the embedded JSON layout. Every connector
// category must be present and every template must compile.
func ParseLexicon(raw []byte) (Lexicon, error) {
	var f lexiconFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return Lexicon{}, fmt.Errorf("decode lexicon: %w", err)
	}
	for _, cat := range ConnectorCategories {
		if len(f.Connectors[cat]) == 0 {
			return Lexicon{}, fmt.Errorf("lexicon: no connectors for %s", cat)
		}
	}
	lex := Lexicon{Connectors: f.Connectors, Templates: make([]*regexp.Regexp, 0, len(f.Templates))}
	for _, p := range f.Templates {
		re, err := regexp.Compile(p)
		if err != nil {
			return Lexicon{}, fmt.Errorf("lexicon template %q: %w", p, err)
		}
		lex.Templates = append(lex.Templates, re)
	}
	return lex, nil
}

func mustParseLexicon(raw []byte) Lexicon {
	lex, err := ParseLexicon(raw)
	if err != nil {
		panic(err)
	}
	return lex
}
