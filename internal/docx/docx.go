// Package docx renders plain resume text into a Word document.
package docx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
)

type Style string

const (
	StyleNormal     Style = "Normal"
	StyleHeading1   Style = "Heading1"
	StyleHeading2   Style = "Heading2"
	StyleListBullet Style = "List Bullet"
)

// bodyFontSize is in points.
const bodyFontSize = 10

type Paragraph struct {
	Style Style
	Text  string
}

// Paragraphs maps the light markdown an LLM produces onto document styles.
// Blank lines and "---" rules are dropped.
func Paragraphs(text string) []Paragraph {
	var out []Paragraph
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "---" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "###"):
			out = append(out, Paragraph{Style: StyleHeading2, Text: strings.TrimSpace(strings.ReplaceAll(line, "###", ""))})
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
			out = append(out, Paragraph{Style: StyleHeading1, Text: strings.Trim(line, "*")})
		case strings.HasPrefix(line, "- "):
			out = append(out, Paragraph{Style: StyleListBullet, Text: line[2:]})
		default:
			out = append(out, Paragraph{Style: StyleNormal, Text: line})
		}
	}
	return out
}

// Render builds a .docx file from text. Body and bullet runs are 10pt.
func Render(text string) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new docx: %w", err)
	}

	for _, p := range Paragraphs(text) {
		switch p.Style {
		case StyleHeading1:
			if _, err := doc.AddHeading(p.Text, 1); err != nil {
				return nil, fmt.Errorf("add heading: %w", err)
			}
		case StyleHeading2:
			if _, err := doc.AddHeading(p.Text, 2); err != nil {
				return nil, fmt.Errorf("add heading: %w", err)
			}
		default:
			para := doc.AddParagraph("")
			if p.Style == StyleListBullet {
				para.Style(string(StyleListBullet))
			}
			para.AddText(p.Text).Size(bodyFontSize)
		}
	}

	dir, err := os.MkdirTemp("", "docx-render")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "document.docx")
	if err := doc.SaveTo(out); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return os.ReadFile(out)
}
