package generator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	frontMatter  = regexp.MustCompile(`(?s)\A---\s*\n.*?\n---\s*(\n|\z)`)
	leadingTitle = regexp.MustCompile(`\A#\s+[^\n]*\n+`)
	codeFence    = regexp.MustCompile("(?s)\\A```(?:markdown|md)?\\s*\n(.*?)\n```\\s*\\z")
)

// PostProcess 清理模型输出并做最小结构校验。
// The model is asked for the body only, so any front matter block, a wrapping
// ```markdown fence or a leading "# Title" line it adds anyway is removed.
// The body is accepted when at least minLen characters remain.
func PostProcess(raw string, minLen int) (string, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return "", fmt.Errorf("model returned empty markdown")
	}
	if m := codeFence.FindStringSubmatch(md); m != nil {
		md = strings.TrimSpace(m[1])
	}
	md = strings.TrimSpace(frontMatter.ReplaceAllString(md, ""))
	md = strings.TrimSpace(leadingTitle.ReplaceAllString(md, ""))

	if n := len([]rune(md)); n < minLen {
		return "", fmt.Errorf("model returned %d characters, want at least %d", n, minLen)
	}
	return md, nil
}
