package generator

import (
	"fmt"
	"strings"
	"time"
)

// StampLayout is the front matter timestamp format.
const StampLayout = "2006-01-02 15:04:05 -0700"

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System  string
	User    string
	Options Options
}

// Options are the decoding knobs forwarded to the model. Zero values are left
// to the server's defaults.
type Options struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// BuildDailyPrompt 生成单主题深度文章的提示词。
func BuildDailyPrompt(topic string, now time.Time, persona string) Prompt {
	user := fmt.Sprintf(
		"Write a deep-dive technical blog post (around 500-600 words) on the current hot topic: '%s'. "+
			"Adhere strictly to the required persona and detailed structure.", topic)
	return Prompt{
		System: systemPrompt(persona, now),
		User:   user,
	}
}

// BuildRoundupPrompt 生成每周综述的提示词。
func BuildRoundupPrompt(now time.Time, persona string) Prompt {
	var sb strings.Builder
	sb.WriteString("Generate the weekly 'Qubit Tech Roundup' for the most important news from the past 7 days ")
	sb.WriteString(fmt.Sprintf("(ending %s).\n", now.Format("January 2, 2006")))
	sb.WriteString("Open with a short paragraph summarizing the three biggest themes.\n")
	sb.WriteString("Structure:\n")
	for i, s := range RoundupSections {
		sb.WriteString(fmt.Sprintf("%d. ## %s\n", i+1, s))
	}
	sb.WriteString("For each section, provide 3-4 news items with a clear summary and follow it with a ")
	sb.WriteString("*personal, italicized, one-sentence opinion* from 'Asrar'.\n")
	sb.WriteString("Ignore the single-topic body structure for this post; use the sections above instead.")

	return Prompt{
		System: systemPrompt(persona, now),
		User:   sb.String(),
	}
}

// RoundupSections are the headings requested for the weekly roundup.
var RoundupSections = []string{
	"AI/ML Breakthroughs",
	"Cloud and DevOps Updates",
	"Cybersecurity and Policy",
}

func systemPrompt(persona string, now time.Time) string {
	return strings.ReplaceAll(persona, "{now}", now.Format(StampLayout))
}
