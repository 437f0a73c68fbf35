package citation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"stylemirror/internal/segment"
)

const (
	maxItems        = 20
	maxTerms        = 4
	maxQueries      = 4
	maxTermsPerLang = 2
	displayRunes    = 100
	fallbackRunes   = 20
)

type Suggestion struct {
	SentenceIndex int      `json:"sentenceIndex"`
	SentenceText  string   `json:"sentenceText"`
	Reason        Reason   `json:"reason"`
	Queries       []string `json:"queries"`
}

type Result struct {
	RulesVersion string       `json:"rulesVersion"`
	Items        []Suggestion `json:"items"`
}

var quotedPattern = regexp.MustCompile(`“([^”]{2,30})”|"([^"]{2,30})"|「([^」]{2,30})」|《([^》]{2,30})》`)
var englishPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9\-]{2,}`)
var hanTermPattern = regexp.MustCompile(`\p{Han}{2,6}(?:技术|方法|算法|模型|框架|系统|网络|机制|理论)`)

// Detect flags draft sentences that likely need a supporting citation.
func Detect(draftText string) Result {
	return DefaultRules().Detect(draftText)
}

func (r Rules) Detect(draftText string) Result {
	res := Result{RulesVersion: r.Version, Items: []Suggestion{}}
	for _, s := range segment.Split(draftText) {
		if len(res.Items) >= maxItems {
			break
		}
		reason, ok := r.Classify(s.Text)
		if !ok {
			continue
		}
		res.Items = append(res.Items, Suggestion{
			SentenceIndex: s.Index,
			SentenceText:  truncate(s.Text, displayRunes),
			Reason:        reason,
			Queries:       r.queries(s.Text, reason),
		})
	}
	return res
}

// Classify returns the first matching reason. Own-work sentences never match.
func (r Rules) Classify(sentence string) (Reason, bool) {
	if anyMatch(r.OwnWork, sentence) {
		return "", false
	}
	for _, reason := range ReasonOrder {
		if anyMatch(r.Triggers[reason], sentence) {
			return reason, true
		}
	}
	return "", false
}

// Terms extracts up to four search terms: quoted phrases, English tokens,
// then Han technical terms.
func (r Rules) Terms(sentence string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	add := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" || len(out) >= maxTerms {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, m := range quotedPattern.FindAllStringSubmatch(sentence, -1) {
		for _, g := range m[1:] {
			add(g)
		}
	}
	for _, w := range englishPattern.FindAllString(sentence, -1) {
		if _, stop := r.Stopwords[strings.ToLower(w)]; stop {
			continue
		}
		add(w)
	}
	for _, t := range hanTermPattern.FindAllString(sentence, -1) {
		add(t)
	}
	return out
}

func (r Rules) queries(sentence string, reason Reason) []string {
	suffix := r.Suffixes[reason]
	var zh, en []string
	for _, t := range r.Terms(sentence) {
		if containsHan(t) {
			zh = append(zh, t)
		} else {
			en = append(en, t)
		}
	}
	out := []string{}
	for i, t := range zh {
		if i >= maxTermsPerLang {
			break
		}
		out = append(out, t+" "+suffix.Chinese)
	}
	for i, t := range en {
		if i >= maxTermsPerLang {
			break
		}
		out = append(out, t+" "+suffix.English)
	}
	if len(out) == 0 {
		out = append(out, fallbackQuery(sentence)+" "+suffix.Chinese)
	}
	if len(out) > maxQueries {
		out = out[:maxQueries]
	}
	return out
}

func fallbackQuery(sentence string) string {
	var b strings.Builder
	n := 0
	for _, r := range sentence {
		if n >= fallbackRunes {
			break
		}
		n++
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
