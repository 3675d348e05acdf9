package post

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "in": {}, "on": {}, "for": {}, "to": {},
	"with": {}, "its": {}, "it": {}, "is": {}, "are": {}, "at": {}, "by": {}, "from": {}, "as": {},
	"or": {}, "vs": {}, "into": {}, "how": {}, "why": {}, "what": {}, "using": {}, "use": {},
	"behind": {}, "guide": {}, "latest": {}, "analysis": {}, "building": {}, "your": {}, "new": {},
	"hands-on": {}, "deep": {}, "dive": {}, "about": {}, "this": {}, "that": {},
}

// categoryRules tag a post when any of the terms occurs in the topic.
var categoryRules = []struct {
	tag   string
	terms []string
}{
	{"kubernetes", []string{"kubernetes", "k8s", "gke", "eks", "aks", "autopilot"}},
	{"llm", []string{"llm", "llms", "gpt", "llama", "rag", "gemini", "transformer", "fine-tuning", "fine tuning"}},
	{"mlops", []string{"mlops", "vertex", "kubeflow", "mlflow"}},
	{"iac", []string{"terraform", "pulumi", "infrastructure as code"}},
	{"security", []string{"security", "secure", "zero-trust", "zero trust", "iam", "cve"}},
	{"data-engineering", []string{"data pipeline", "dataflow", "bigquery", "spark", "etl", "kafka"}},
	{"serverless", []string{"cloud functions", "cloud run", "lambda", "serverless"}},
	{"jax", []string{"jax", "xla", "tpu", "tpus"}},
}

// Categories returns base plus the tags triggered by the topic text.
func Categories(base []string, topic string) []string {
	text := " " + strings.Join(words(topic), " ") + " "
	var extra []string
	for _, r := range categoryRules {
		for _, term := range r.terms {
			if strings.Contains(text, " "+term+" ") {
				extra = append(extra, r.tag)
				break
			}
		}
	}
	return Merge(base, extra)
}

// Keywords returns base plus the content words of topic, capped at max.
func Keywords(base []string, topic string, max int) []string {
	var content []string
	for _, w := range words(topic) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		content = append(content, w)
	}
	out := Merge(base, content)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// words lowercases text and splits it on anything but letters, digits and
// inner hyphens.
func words(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-')
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "-"); f != "" {
			out = append(out, f)
		}
	}
	return out
}
