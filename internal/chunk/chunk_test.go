package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitAtHeadings(t *testing.T) {
	doc := "前言段落。\n\n# 引言\n\n近年来研究增多。\n\n## 方法\n\n我们采用新模型。\n\n```\n# 代码注释不是标题\n```"
	chunks := Split(doc, 1000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].SectionTitle != "" || chunks[0].Text != "前言段落。" {
		t.Fatalf("unexpected preamble chunk: %+v", chunks[0])
	}
	if chunks[1].SectionTitle != "引言" || !strings.HasPrefix(chunks[1].Text, "# 引言") {
		t.Fatalf("unexpected first section: %+v", chunks[1])
	}
	if chunks[2].SectionTitle != "方法" || !strings.Contains(chunks[2].Text, "# 代码注释不是标题") {
		t.Fatalf("code block must stay inside the method section: %+v", chunks[2])
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("expected index %d, got %d", i, c.Index)
		}
	}
}

func TestSplitLongSectionAtParagraphs(t *testing.T) {
	para := strings.Repeat("字", 40)
	doc := "# 长章节\n\n" + strings.Join([]string{para, para, para, para, para}, "\n\n")
	chunks := Split(doc, 100)
	if len(chunks) < 3 {
		t.Fatalf("expected the section to be packed into several chunks, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		if c.SectionTitle != "长章节" {
			t.Fatalf("expected section title on every chunk, got %q", c.SectionTitle)
		}
		if utf8.RuneCountInString(c.Text) > 100 {
			t.Fatalf("chunk exceeds budget: %d", utf8.RuneCountInString(c.Text))
		}
		total += strings.Count(c.Text, para)
	}
	if total != 5 {
		t.Fatalf("data loss: expected 5 paragraphs across chunks, got %d", total)
	}
}

func TestSplitEmpty(t *testing.T) {
	if got := Split(" \n\n ", 100); len(got) != 0 {
		t.Fatalf("expected no chunks, got %d", len(got))
	}
}

func TestContextWindows(t *testing.T) {
	chunks := []Chunk{{Text: "甲乙丙丁"}, {Text: "戊己"}, {Text: "庚辛壬癸"}}
	if got := ContextBefore(chunks, 1, 2); got != "丙丁" {
		t.Fatalf("unexpected context before: %q", got)
	}
	if got := ContextAfter(chunks, 1, 3); got != "庚辛壬" {
		t.Fatalf("unexpected context after: %q", got)
	}
	if ContextBefore(chunks, 0, 5) != "" || ContextAfter(chunks, 2, 5) != "" {
		t.Fatal("expected empty context at document edges")
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"a", " ", "b\n"}); got != "a\n\nb" {
		t.Fatalf("unexpected join: %q", got)
	}
}
