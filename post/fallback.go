package post

import (
	"fmt"
	"strings"
)

// Section headings the daily body is expected to carry.
const (
	HeadingIntroduction = "Introduction"
	HeadingProblem      = "Why This Matters (The Problem Statement)"
	HeadingDeepDive     = "Technical Deep Dive"
	HeadingTakeaway     = "The Qubit Takeaway"
)

// FallbackBody is the deterministic body used when generation fails.
func FallbackBody(topic string) string {
	code := strings.NewReplacer("`", "", `"`, "'", "\n", " ").Replace(topic)

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", HeadingIntroduction)
	fmt.Fprintf(&b, "Today's post looks at **%s**. The long-form write-up is still being prepared, ", topic)
	b.WriteString("so this entry lays out the skeleton we will fill in: what the problem is, how the pieces fit, ")
	b.WriteString("and where we think it is heading.\n\n")

	fmt.Fprintf(&b, "## %s\n\n", HeadingProblem)
	fmt.Fprintf(&b, "Teams adopting %s run into the same questions: how it changes day-to-day operations, ", topic)
	b.WriteString("what it costs to run in production, and which failure modes show up first. ")
	b.WriteString("Getting those answers early avoids expensive rework later.\n\n")

	fmt.Fprintf(&b, "## %s: %s\n\n", HeadingDeepDive, topic)
	b.WriteString("- **Architecture**: identify the control plane, the data plane and the boundaries between them.\n")
	b.WriteString("- **Operations**: decide what gets automated, what gets observed, and who gets paged.\n")
	b.WriteString("- **Cost**: measure before optimizing; most surprises come from idle capacity.\n\n")
	b.WriteString("A minimal starting point:\n\n")
	b.WriteString("```bash\n")
	b.WriteString("# bootstrap a sandbox project for the experiment\n")
	b.WriteString("gcloud config set project qubit-sandbox\n")
	fmt.Fprintf(&b, "echo \"exploring: %s\"\n", code)
	b.WriteString("```\n\n")

	fmt.Fprintf(&b, "### %s\n\n", HeadingTakeaway)
	fmt.Fprintf(&b, "*%s is worth your attention, but only with a clear problem to solve. ", topic)
	b.WriteString("Start small, measure everything, and let the numbers decide how far to take it.*\n")
	return b.String()
}
