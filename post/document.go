// Package post assembles Jekyll posts: YAML front matter plus a markdown body.
package post

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the metadata block read by the static-site generator.
type FrontMatter struct {
	Layout     string   `yaml:"layout"`
	Title      string   `yaml:"title"`
	Date       string   `yaml:"date"`
	Author     string   `yaml:"author"`
	Categories []string `yaml:"categories"`
	Abstract   string   `yaml:"abstract"`
	Keywords   []string `yaml:"keywords"`
}

// Document is a complete post.
type Document struct {
	Meta     FrontMatter
	Body     string
	Fallback bool
}

var fmBlock = regexp.MustCompile(`(?s)\A---\n(.*?\n)---\n?`)

// Render writes the post file contents. The front matter is marshalled from a
// node tree so quoting stays explicit, then parsed back so a malformed block
// is caught here instead of by the site build.
func (d Document) Render() (string, error) {
	meta, err := yaml.Marshal(d.Meta.node())
	if err != nil {
		return "", fmt.Errorf("render front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(d.Body))
	b.WriteString("\n")

	out := b.String()
	got, _, err := Parse(out)
	if err != nil {
		return "", fmt.Errorf("render front matter: %w", err)
	}
	if got.Title != d.Meta.Title {
		return "", fmt.Errorf("render front matter: title round trip mismatch %q != %q", got.Title, d.Meta.Title)
	}
	return out, nil
}

// node lays out the block in the order Jekyll themes expect. Free text is
// double quoted; the date stays plain so it reads as a timestamp.
func (fm FrontMatter) node() *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, str(key, 0), value)
	}
	add("layout", str(fm.Layout, 0))
	add("title", str(fm.Title, yaml.DoubleQuotedStyle))
	add("date", str(fm.Date, 0))
	add("author", str(fm.Author, yaml.DoubleQuotedStyle))
	add("categories", seq(fm.Categories, 0))
	add("abstract", str(fm.Abstract, yaml.DoubleQuotedStyle))
	add("keywords", seq(fm.Keywords, yaml.DoubleQuotedStyle))
	return m
}

// str is a string scalar; yaml.v3 adds quotes to plain values that would
// otherwise resolve to another type.
func str(v string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Style: style}
}

func seq(items []string, style yaml.Style) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, it := range items {
		n.Content = append(n.Content, str(it, style))
	}
	return n
}

// Parse splits a post into its front matter and body.
func Parse(doc string) (FrontMatter, string, error) {
	m := fmBlock.FindStringSubmatchIndex(doc)
	if m == nil {
		return FrontMatter{}, "", errors.New("missing front matter block")
	}
	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(doc[m[2]:m[3]]), &fm); err != nil {
		return FrontMatter{}, "", fmt.Errorf("parse front matter: %w", err)
	}
	return fm, strings.TrimSpace(doc[m[1]:]), nil
}
