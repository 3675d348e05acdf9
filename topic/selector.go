package topic

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"unicode/utf8"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/history"
	"auto_blog_article_publisher/slug"
)

// Tier names the stage of the fallback chain that produced a topic.
type Tier string

const (
	TierLive    Tier = "live"
	TierCurated Tier = "curated"
	TierDefault Tier = "default"
)

type Choice struct {
	Topic string
	Tier  Tier
}

// Selector runs the live -> curated -> default chain. It never fails.
type Selector struct {
	source TrendSource
	seeds  []string
	cfg    config.TopicsConfig
	intn   func(int) int
	title  func(string) string
	logger *slog.Logger
}

// NewSelector builds a Selector. A nil source skips the live tier.
func NewSelector(source TrendSource, seeds []string, cfg config.TopicsConfig, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		source: source,
		seeds:  seeds,
		cfg:    cfg,
		intn:   rand.IntN,
		logger: logger,
	}
}

// WithRand replaces the random source used for curated picks.
func (s *Selector) WithRand(r *rand.Rand) *Selector {
	s.intn = r.IntN
	return s
}

// WithTitle sets the topic -> post title transform. Posts are filed under the
// slug of their title, so freshness is checked against both slugs.
func (s *Selector) WithTitle(title func(string) string) *Selector {
	s.title = title
	return s
}

// Pick returns the first fresh live candidate, otherwise a curated topic,
// otherwise the configured default.
//
// Curated picks are not checked against history unless DedupCurated is set;
// a live query error goes straight to the default when CuratedOnError is
// false.
func (s *Selector) Pick(ctx context.Context, seen history.Set) Choice {
	if s.source != nil {
		candidates, err := s.source.Candidates(ctx, s.seeds)
		switch {
		case err != nil:
			s.logger.Warn("trend query failed", "error", err)
			if !s.cfg.UseCuratedOnError() {
				return s.fallbackDefault("trend query failed")
			}
		default:
			if t, ok := s.firstFresh(Rank(candidates), seen); ok {
				s.logger.Info("selected fresh topic", "topic", t, "tier", TierLive)
				return Choice{Topic: t, Tier: TierLive}
			}
			s.logger.Warn("all trending topics were found in history", "candidates", len(candidates))
		}
	}
	return s.curated(seen)
}

func (s *Selector) curated(seen history.Set) Choice {
	pool := s.cfg.Curated
	if s.cfg.DedupCurated {
		pool = nil
		for _, c := range s.cfg.Curated {
			if s.fresh(c, seen) {
				pool = append(pool, c)
			}
		}
	}
	if len(pool) == 0 {
		return s.fallbackDefault("no curated topic available")
	}
	t := pool[s.intn(len(pool))]
	s.logger.Info("using backup subject", "topic", t, "tier", TierCurated)
	return Choice{Topic: t, Tier: TierCurated}
}

func (s *Selector) fallbackDefault(reason string) Choice {
	s.logger.Warn("using hardcoded default topic", "reason", reason, "tier", TierDefault)
	return Choice{Topic: s.cfg.Default, Tier: TierDefault}
}

// Rank deduplicates candidates and orders them longest first; longer phrases
// tend to be more specific. Ties keep their input order.
func Rank(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})
	return out
}

// IsFresh reports whether a topic has not been published yet: neither its
// slug nor its text (case-insensitively) is in history.
func IsFresh(topic string, seen history.Set) bool {
	s := slug.Make(topic)
	if s == "" {
		return false
	}
	return !seen.Has(s) && !seen.HasFold(topic)
}

func (s *Selector) fresh(topic string, seen history.Set) bool {
	if !IsFresh(topic, seen) {
		return false
	}
	if s.title == nil {
		return true
	}
	return !seen.Has(slug.Make(s.title(topic)))
}

func (s *Selector) firstFresh(ranked []string, seen history.Set) (string, bool) {
	for _, t := range ranked {
		if s.fresh(t, seen) {
			return t, true
		}
	}
	return "", false
}
