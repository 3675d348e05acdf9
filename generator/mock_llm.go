package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("## Introduction\n\n")
	sb.WriteString("This post was produced by the offline mock model so the publishing pipeline can be exercised end to end.\n\n")
	sb.WriteString("## Why This Matters (The Problem Statement)\n\n")
	sb.WriteString("Scheduled jobs need a deterministic body when no model is reachable, and the rest of the ")
	sb.WriteString("pipeline (front matter, commit, push) has to behave exactly as it would with real content.\n\n")
	sb.WriteString("## Technical Deep Dive: The Request\n\n")
	sb.WriteString("The instruction the model would have received:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n\n")
	sb.WriteString("### The Qubit Takeaway\n\n")
	sb.WriteString(fmt.Sprintf("*Mock output, %d characters of system prompt were ignored.*\n", len(prompt.System)))
	return sb.String(), nil
}

// FailingLLM always returns Err. Useful for forcing the fallback document.
type FailingLLM struct {
	Err error
}

func (f FailingLLM) Complete(context.Context, Prompt) (string, error) {
	if f.Err == nil {
		return "", fmt.Errorf("llm unavailable")
	}
	return "", f.Err
}
