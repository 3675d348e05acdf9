package post

import (
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/generator"
)

const ellipsis = "..."

// Assembler merges a generated (or fallback) body with locally computed
// front matter.
type Assembler struct {
	cfg    config.PostConfig
	loc    *time.Location
	logger *slog.Logger
}

func NewAssembler(cfg config.PostConfig, loc *time.Location, logger *slog.Logger) *Assembler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{cfg: cfg, loc: loc, logger: logger}
}

// Assemble builds the post for topic. When gen is not OK the deterministic
// fallback body is used.
func (a *Assembler) Assemble(topic string, gen generator.Result, now time.Time) Document {
	body := gen.Body
	fallback := !gen.OK
	if fallback {
		body = FallbackBody(topic)
	}
	return Document{
		Meta:     a.Meta(topic, now),
		Body:     body,
		Fallback: fallback,
	}
}

// Meta computes the front matter for topic, independent of the body.
func (a *Assembler) Meta(topic string, now time.Time) FrontMatter {
	topic = strings.TrimSpace(topic)
	return FrontMatter{
		Layout:     a.cfg.Layout,
		Title:      Truncate(topic, a.cfg.TitleMax),
		Date:       now.In(a.loc).Format(generator.StampLayout),
		Author:     a.cfg.Author,
		Categories: Categories(a.cfg.BaseCategories, topic),
		Abstract:   Truncate(a.cfg.AbstractPrefix+strings.TrimRight(topic, ".")+".", a.cfg.AbstractMax),
		Keywords:   Keywords(a.cfg.BaseKeywords, topic, a.cfg.MaxKeywords),
	}
}

// Truncate shortens s to at most max runes, ending with "..." when cut.
// max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max < len(ellipsis) {
		return string(r[:max])
	}
	keep := max - len(ellipsis)
	return strings.TrimRightFunc(string(r[:keep]), unicode.IsSpace) + ellipsis
}

// Merge appends lists keeping first occurrences only.
func Merge(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range lists {
		for _, v := range l {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
