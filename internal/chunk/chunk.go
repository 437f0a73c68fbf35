package chunk

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"stylemirror/internal/textnorm"
)

// Chunk is one rewrite unit. Text includes the section heading line when the
// chunk opens a section.
type Chunk struct {
	Index        int
	SectionTitle string
	Text         string
}

type section struct {
	title string
	body  string
}

// Split cuts a Markdown document at heading boundaries, then packs the
// paragraphs of any section longer than maxChars into chunks of at most
// maxChars characters. A single oversized paragraph is never cut.
func Split(doc string, maxChars int) []Chunk {
	normalized := textnorm.Normalize(doc)
	if normalized == "" {
		return nil
	}
	if maxChars <= 0 {
		maxChars = 1200
	}

	out := []Chunk{}
	for _, sec := range sections(normalized) {
		if utf8.RuneCountInString(sec.body) <= maxChars {
			out = appendChunk(out, sec.title, sec.body)
			continue
		}
		var b strings.Builder
		size := 0
		for _, para := range strings.Split(sec.body, "\n\n") {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			n := utf8.RuneCountInString(para)
			if size > 0 && size+2+n > maxChars {
				out = appendChunk(out, sec.title, b.String())
				b.Reset()
				size = 0
			}
			if size > 0 {
				b.WriteString("\n\n")
				size += 2
			}
			b.WriteString(para)
			size += n
		}
		out = appendChunk(out, sec.title, b.String())
	}
	return out
}

func appendChunk(out []Chunk, title, body string) []Chunk {
	body = strings.TrimSpace(body)
	if body == "" {
		return out
	}
	return append(out, Chunk{Index: len(out), SectionTitle: title, Text: body})
}

// sections uses the goldmark AST so that only real headings (not "#" inside
// code blocks) start a new section.
func sections(src string) []section {
	source := []byte(src)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	type mark struct {
		start int
		title string
	}
	marks := []mark{}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		var title strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				title.WriteString(" ")
			}
			title.Write(seg.Value(source))
		}
		marks = append(marks, mark{start: lineStart(src, lines.At(0).Start), title: strings.TrimSpace(title.String())})
		return ast.WalkSkipChildren, nil
	})

	if len(marks) == 0 {
		return []section{{body: src}}
	}
	out := make([]section, 0, len(marks)+1)
	if marks[0].start > 0 {
		out = append(out, section{body: src[:marks[0].start]})
	}
	for i, m := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		out = append(out, section{title: m.title, body: src[m.start:end]})
	}
	return out
}

func lineStart(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	if i := strings.LastIndexByte(src[:offset], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// ContextBefore returns up to n trailing characters of the previous chunk.
func ContextBefore(chunks []Chunk, i, n int) string {
	if i <= 0 || i > len(chunks) || n <= 0 {
		return ""
	}
	r := []rune(chunks[i-1].Text)
	if len(r) > n {
		r = r[len(r)-n:]
	}
	return string(r)
}

// ContextAfter returns up to n leading characters of the next chunk.
func ContextAfter(chunks []Chunk, i, n int) string {
	if i < 0 || i+1 >= len(chunks) || n <= 0 {
		return ""
	}
	r := []rune(chunks[i+1].Text)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// Join reassembles chunk texts in order.
func Join(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
