package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Generator 负责调用模型生成正文；失败时返回回退信号而不是错误。
type Generator struct {
	llm       LLMClient
	timeout   time.Duration
	minLength int
	persona   string
	opts      Options
	logger    *slog.Logger
}

// Settings holds the Generator's knobs.
type Settings struct {
	Timeout   time.Duration
	MinLength int
	Persona   string
	Options   Options
}

func NewGenerator(llm LLMClient, s Settings, logger *slog.Logger) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if s.Timeout <= 0 {
		return nil, errors.New("generation timeout must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:       llm,
		timeout:   s.Timeout,
		minLength: s.MinLength,
		persona:   s.Persona,
		opts:      s.Options,
		logger:    logger,
	}, nil
}

// Prompt builds the prompt for req without calling the model.
func (g *Generator) Prompt(req Request) Prompt {
	var p Prompt
	switch req.Mode {
	case ModeWeekly:
		p = BuildRoundupPrompt(req.Now, g.persona)
	default:
		p = BuildDailyPrompt(req.Topic, req.Now, g.persona)
	}
	p.Options = g.opts
	return p
}

// Generate makes exactly one model call bounded by the configured timeout.
// Any failure yields Result{OK: false}.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Info("requesting generated content", "mode", req.Mode, "topic", req.Topic, "timeout", g.timeout)

	raw, err := g.llm.Complete(ctx, g.Prompt(req))
	res := Result{Elapsed: time.Since(start)}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", g.timeout, err)
		}
		res.Err = fmt.Errorf("llm call: %w", err)
		g.logger.Warn("generation failed, using fallback", "error", res.Err, "elapsed", res.Elapsed)
		return res
	}

	body, err := PostProcess(raw, g.minLength)
	if err != nil {
		res.Err = fmt.Errorf("malformed content: %w", err)
		g.logger.Warn("generation rejected, using fallback", "error", res.Err, "elapsed", res.Elapsed)
		return res
	}

	res.Body = body
	res.OK = true
	g.logger.Info("generated content", "chars", len(body), "elapsed", res.Elapsed)
	return res
}
