package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"stylemirror/internal/textnorm"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Parsed is an input document reduced to Markdown-ish plain text.
type Parsed struct {
	Title      string
	SourcePath string
	Format     string
	Text       string
}

// ParseFile reads a sample, draft or standard from disk. Paragraph breaks
// survive as blank lines and Word headings become "#" lines.
func ParseFile(path string) (*Parsed, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md", ".markdown":
		text, err = parsePlain(path)
	case ".docx":
		var raw []byte
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		text, err = parseDOCX(raw)
	case ".pdf":
		text, err = parsePDF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err != nil {
		return nil, err
	}

	return &Parsed{
		Title:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		SourcePath: path,
		Format:     strings.TrimPrefix(ext, "."),
		Text:       textnorm.Normalize(text),
	}, nil
}

func parsePlain(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%s is not valid UTF-8", filepath.Base(path))
	}
	return string(raw), nil
}

func parseDOCX(raw []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", fmt.Errorf("open document.xml: %w", openErr)
			}
			defer rc.Close()
			xmlData, err = io.ReadAll(rc)
			if err != nil {
				return "", fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(xmlData) == 0 {
		return "", fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	paragraphs := []string{}
	var cur strings.Builder
	level := 0
	inText := false
	for {
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return "", fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				cur.Reset()
				level = 0
			case "pStyle":
				level = headingLevel(t.Attr)
			case "t":
				inText = true
			case "tab":
				cur.WriteString(" ")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				p := strings.TrimSpace(cur.String())
				if p == "" {
					continue
				}
				if level > 0 {
					p = strings.Repeat("#", level) + " " + p
				}
				paragraphs = append(paragraphs, p)
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

// headingLevel maps Word's built-in "Heading1".."Heading6" styles (and the
// localized numeric ids "1".."6") to a Markdown heading depth.
func headingLevel(attrs []xml.Attr) int {
	for _, a := range attrs {
		if a.Name.Local != "val" {
			continue
		}
		v := strings.TrimPrefix(strings.ToLower(a.Value), "heading")
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 6 {
			return 0
		}
		return n
	}
	return 0
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := []string{}
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no extractable text found in pdf")
	}
	return strings.Join(pages, "\n\n"), nil
}
