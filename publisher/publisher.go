package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/post"
	"auto_blog_article_publisher/slug"
)

// PlaceholderTitle is used when no title can be read from a rendered post.
const PlaceholderTitle = "Automation Error Post"

const commitPrefix = "🤖 AUTO: New Post - "

// ErrMissingToken means the push credential variable is unset or empty.
var ErrMissingToken = errors.New("push token is missing")

var titleRe = regexp.MustCompile(`title:\s*["']?([^"'\n]+)["']?`)

// Options controls where posts land and whether they are pushed.
type Options struct {
	// PostsDir is relative to the repository root.
	PostsDir  string
	Extension string
	Location  *time.Location
	Push      bool
}

// Published describes a post written (and possibly pushed) by Publish.
type Published struct {
	Path   string
	Title  string
	Commit string
	Pushed bool
}

// Publisher writes rendered posts into a repository, commits them as the
// bot identity and pushes with an in-memory authenticated remote URL.
type Publisher struct {
	repo   Repository
	cfg    config.GitConfig
	opts   Options
	getenv func(string) string
	now    func() time.Time
	logger *slog.Logger
}

func New(repo Repository, cfg config.GitConfig, opts Options, logger *slog.Logger) (*Publisher, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Extension == "" {
		opts.Extension = ".md"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		repo:   repo,
		cfg:    cfg,
		opts:   opts,
		getenv: os.Getenv,
		now:    time.Now,
		logger: logger,
	}, nil
}

// WithEnv swaps the environment lookup, mainly for tests.
func (p *Publisher) WithEnv(getenv func(string) string) *Publisher {
	p.getenv = getenv
	return p
}

func (p *Publisher) WithClock(now func() time.Time) *Publisher {
	p.now = now
	return p
}

// ExtractTitle reads the title from a rendered post. The front matter is
// parsed first; a permissive pattern match covers documents that do not
// parse. ok is false when the placeholder was returned.
func ExtractTitle(doc string) (title string, ok bool) {
	if fm, _, err := post.Parse(doc); err == nil {
		if t := strings.TrimSpace(fm.Title); t != "" {
			return t, true
		}
	}
	if m := titleRe.FindStringSubmatch(doc); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			return t, true
		}
	}
	return PlaceholderTitle, false
}

// Filename is <YYYY-MM-DD>-<slug><ext> for the date of now.
func Filename(now time.Time, title, ext string) string {
	s := slug.Make(title)
	if s == "" {
		s = slug.Make(PlaceholderTitle)
	}
	return now.Format("2006-01-02") + "-" + s + ext
}

// Write stores doc under the posts directory without touching version control.
// It returns the path relative to the repository root.
func (p *Publisher) Write(doc string) (rel, title string, err error) {
	title, ok := ExtractTitle(doc)
	if !ok {
		p.logger.Warn("could not extract title, using placeholder", "title", title)
	}
	name := Filename(p.now().In(p.opts.Location), title, p.opts.Extension)
	rel = filepath.Join(p.opts.PostsDir, name)
	abs := filepath.Join(p.repo.Root(), rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", title, fmt.Errorf("create posts dir: %w", err)
	}
	if err := os.WriteFile(abs, []byte(doc), 0o644); err != nil {
		return "", title, fmt.Errorf("write post: %w", err)
	}
	p.logger.Info("post written", "path", abs)
	return rel, title, nil
}

// Publish writes, commits and (unless disabled) pushes doc.
func (p *Publisher) Publish(ctx context.Context, doc string) (Published, error) {
	rel, title, err := p.Write(doc)
	out := Published{Path: filepath.Join(p.repo.Root(), rel), Title: title}
	if err != nil {
		return out, err
	}

	if err := p.repo.Add(filepath.ToSlash(rel)); err != nil {
		return out, err
	}
	id, err := p.repo.Commit(commitPrefix+title, Signature{Name: p.cfg.BotName, Email: p.cfg.BotEmail})
	if err != nil {
		return out, err
	}
	out.Commit = id
	p.logger.Info("post committed", "commit", id, "title", title)

	if !p.opts.Push {
		p.logger.Info("push disabled, leaving commit local")
		return out, nil
	}

	token := p.getenv(p.cfg.TokenEnv)
	if token == "" {
		return out, fmt.Errorf("%w: set %s", ErrMissingToken, p.cfg.TokenEnv)
	}

	err = WithAuthenticatedRemote(p.repo, p.cfg.Remote, token, func(url string) error {
		return p.repo.Push(ctx, p.cfg.Remote, url)
	})
	if err != nil {
		return out, Scrub(fmt.Errorf("push %s: %w", p.cfg.Remote, err), token)
	}
	out.Pushed = true
	p.logger.Info("post pushed", "remote", p.cfg.Remote)
	return out, nil
}
