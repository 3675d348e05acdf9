package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/generator"
	"auto_blog_article_publisher/history"
	"auto_blog_article_publisher/post"
	"auto_blog_article_publisher/publisher"
	"auto_blog_article_publisher/topic"
)

// Deps are the collaborators of one run.
type Deps struct {
	Config *config.Config
	// Trends is the live trend source; nil skips the live tier.
	Trends topic.TrendSource
	LLM    generator.LLMClient
	// Repo is where posts are written. Dry runs may pass publisher.Local.
	Repo   publisher.Repository
	DryRun bool
	Now    func() time.Time
	Logger *slog.Logger
}

// Report summarizes a run.
type Report struct {
	RunID    string
	Mode     generator.Mode
	Topic    string
	Tier     topic.Tier
	Title    string
	Path     string
	Preview  string
	Commit   string
	Pushed   bool
	Fallback bool
	// GenerationErr explains why the fallback body was used.
	GenerationErr error
	Elapsed       time.Duration
}

// Runner wires topic selection, generation, assembly and publishing.
type Runner struct {
	cfg       *config.Config
	selector  *topic.Selector
	gen       *generator.Generator
	assembler *post.Assembler
	pub       *publisher.Publisher
	postsDir  string
	dryRun    bool
	now       func() time.Time
	logger    *slog.Logger
}

func New(d Deps) (*Runner, error) {
	if d.Config == nil {
		return nil, errors.New("config is required")
	}
	if d.Repo == nil {
		return nil, errors.New("repository is required")
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	cfg := d.Config
	loc := cfg.Location()

	postsDir, err := relativePostsDir(d.Repo.Root(), cfg.PostsDir)
	if err != nil {
		return nil, err
	}

	gen, err := generator.NewGenerator(d.LLM, generator.Settings{
		Timeout:   cfg.LLM.Timeout,
		MinLength: cfg.LLM.MinLength,
		Persona:   cfg.LLM.Persona,
		Options: generator.Options{
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			TopK:        cfg.LLM.TopK,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
	}, d.Logger.With("component", "generator"))
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}

	pub, err := publisher.New(d.Repo, cfg.Git, publisher.Options{
		PostsDir:  postsDir,
		Extension: cfg.Post.Extension,
		Location:  loc,
		Push:      cfg.PushEnabled(),
	}, d.Logger.With("component", "publisher"))
	if err != nil {
		return nil, fmt.Errorf("build publisher: %w", err)
	}
	pub.WithClock(d.Now)

	titleMax := cfg.Post.TitleMax
	selector := topic.NewSelector(d.Trends, cfg.Trends.Seeds, cfg.Topics, d.Logger.With("component", "topic")).
		WithTitle(func(t string) string { return post.Truncate(strings.TrimSpace(t), titleMax) })

	return &Runner{
		cfg:       cfg,
		selector:  selector,
		gen:       gen,
		assembler: post.NewAssembler(cfg.Post, loc, d.Logger.With("component", "post")),
		pub:       pub,
		postsDir:  filepath.Join(d.Repo.Root(), postsDir),
		dryRun:    d.DryRun,
		now:       d.Now,
		logger:    d.Logger,
	}, nil
}

// Run produces and publishes exactly one post for mode. External-service
// failures degrade to fallbacks; only configuration, file-system and git
// errors are returned.
func (r *Runner) Run(ctx context.Context, mode generator.Mode) (Report, error) {
	start := r.now()
	rep := Report{RunID: uuid.NewString(), Mode: mode}
	log := r.logger.With("run_id", rep.RunID, "mode", mode)
	log.Info("run started", "dry_run", r.dryRun)

	now := start.In(r.cfg.Location())
	switch mode {
	case generator.ModeWeekly:
		rep.Topic = now.Format(r.cfg.Post.RoundupTitleFmt)
		rep.Tier = topic.TierDefault
	case generator.ModeDaily:
		seen, err := history.Read(r.postsDir, r.cfg.Post.Extension)
		if err != nil {
			return rep, fmt.Errorf("read post history: %w", err)
		}
		log.Debug("history loaded", "posts", seen.Len())
		choice := r.selector.Pick(ctx, seen)
		rep.Topic, rep.Tier = choice.Topic, choice.Tier
	default:
		return rep, fmt.Errorf("unknown mode %q", mode)
	}
	log.Info("topic chosen", "topic", rep.Topic, "tier", rep.Tier)

	res := r.gen.Generate(ctx, generator.Request{Topic: rep.Topic, Mode: mode, Now: now})
	rep.GenerationErr = res.Err
	doc := r.assembler.Assemble(rep.Topic, res, now)
	rep.Fallback = doc.Fallback
	if doc.Fallback {
		log.Warn("using fallback body", "reason", res.Err)
	} else if mode == generator.ModeDaily {
		if missing := post.MissingSections(doc.Body); len(missing) > 0 {
			log.Warn("generated body is missing sections", "missing", strings.Join(missing, ", "))
		}
	}

	text, err := doc.Render()
	if err != nil {
		return rep, fmt.Errorf("render post: %w", err)
	}

	if r.dryRun {
		rel, title, err := r.pub.Write(text)
		rep.Title = title
		if err != nil {
			return rep, err
		}
		rep.Path = filepath.Join(r.postsDir, filepath.Base(rel))
		rep.Preview, err = writePreview(rep.Path, doc.Body)
		if err != nil {
			return rep, err
		}
		rep.Elapsed = r.now().Sub(start)
		log.Info("dry run complete", "path", rep.Path, "preview", rep.Preview)
		return rep, nil
	}

	out, err := r.pub.Publish(ctx, text)
	rep.Title, rep.Path, rep.Commit, rep.Pushed = out.Title, out.Path, out.Commit, out.Pushed
	rep.Elapsed = r.now().Sub(start)
	if err != nil {
		return rep, fmt.Errorf("publish: %w", err)
	}
	log.Info("run complete", "path", rep.Path, "commit", rep.Commit, "pushed", rep.Pushed, "elapsed", rep.Elapsed)
	return rep, nil
}

func writePreview(postPath, body string) (string, error) {
	html, err := post.RenderHTML(body)
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	out := strings.TrimSuffix(postPath, filepath.Ext(postPath)) + ".preview.html"
	if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write preview: %w", err)
	}
	return out, nil
}

func relativePostsDir(root, postsDir string) (string, error) {
	if !filepath.IsAbs(postsDir) {
		return filepath.Clean(postsDir), nil
	}
	rel, err := filepath.Rel(root, postsDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("posts dir %s is outside repository %s", postsDir, root)
	}
	return rel, nil
}
