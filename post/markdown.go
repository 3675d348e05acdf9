package post

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RequiredSections are matched case-insensitively against heading text.
var RequiredSections = []string{"introduction", "problem statement", "deep dive", "takeaway"}

// Sections returns the text of every heading in md, in document order.
func Sections(md string) []string {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			out = append(out, strings.TrimSpace(inlineText(h, src)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// MissingSections lists the required sections that md lacks.
func MissingSections(md string) []string {
	headings := strings.ToLower(strings.Join(Sections(md), "\n"))
	var missing []string
	for _, s := range RequiredSections {
		if !strings.Contains(headings, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteString(inlineText(c, src))
	}
	return b.String()
}

// RenderHTML converts markdown to HTML for local previews.
func RenderHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
