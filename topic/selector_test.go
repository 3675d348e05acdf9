package topic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"auto_blog_article_publisher/config"
	"auto_blog_article_publisher/history"
)

type SelectorTestSuite struct {
	suite.Suite
	cfg    config.TopicsConfig
	logger *slog.Logger
}

func (s *SelectorTestSuite) SetupTest() {
	s.cfg = config.TopicsConfig{
		Curated: []string{"Curated One", "Curated Two", "Curated Three"},
		Default: "The Default Topic",
	}
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSelectorTestSuite(t *testing.T) {
	suite.Run(t, new(SelectorTestSuite))
}

func (s *SelectorTestSuite) selector(src TrendSource) *Selector {
	return NewSelector(src, []string{"MLOps"}, s.cfg, s.logger).WithRand(rand.New(rand.NewPCG(1, 2)))
}

func (s *SelectorTestSuite) TestLivePrefersLongestFresh() {
	src := Static{Topics: []string{"gke", "GKE Autopilot", "LLM fine tuning at scale", "GKE Autopilot"}}
	got := s.selector(src).Pick(context.Background(), history.Set{})

	s.Equal(TierLive, got.Tier)
	s.Equal("LLM fine tuning at scale", got.Topic)
}

func (s *SelectorTestSuite) TestLiveSkipsHistory() {
	seen := history.Set{"llm-fine-tuning-at-scale": {}, "gke-autopilot": {}}
	src := Static{Topics: []string{"GKE Autopilot", "LLM fine tuning at scale", "JAX"}}
	got := s.selector(src).Pick(context.Background(), seen)

	s.Equal(TierLive, got.Tier)
	s.Equal("JAX", got.Topic)
}

func (s *SelectorTestSuite) TestLiveSkipsTopicFiledUnderShortTitle() {
	long := "How platform teams run multi-tenant GPU inference on GKE Autopilot with Kueue"
	seen := history.Set{"how-platform-teams": {}}
	short := func(t string) string { return t[:18] + "..." }
	got := s.selector(Static{Topics: []string{long, "JAX"}}).WithTitle(short).Pick(context.Background(), seen)

	s.Equal(TierLive, got.Tier)
	s.Equal("JAX", got.Topic)
}

func (s *SelectorTestSuite) TestLiveSkipsCaseInsensitiveTextMatch() {
	seen := history.Set{"mlops": {}}
	src := Static{Topics: []string{"MLOPS", "vertex"}}
	got := s.selector(src).Pick(context.Background(), seen)

	s.Equal("vertex", got.Topic)
}

func (s *SelectorTestSuite) TestExhaustedLiveFallsBackToCurated() {
	seen := history.Set{"gke-autopilot": {}}
	got := s.selector(Static{Topics: []string{"GKE Autopilot", "  "}}).Pick(context.Background(), seen)

	s.Equal(TierCurated, got.Tier)
	s.Contains(s.cfg.Curated, got.Topic)
}

func (s *SelectorTestSuite) TestLiveErrorFallsBackToCurated() {
	got := s.selector(Static{Err: errors.New("429 too many requests")}).Pick(context.Background(), history.Set{})

	s.Equal(TierCurated, got.Tier)
	s.Contains(s.cfg.Curated, got.Topic)
}

func (s *SelectorTestSuite) TestCuratedIsNotDedupedByDefault() {
	s.cfg.Curated = []string{"Only One"}
	seen := history.Set{"only-one": {}}
	got := s.selector(Static{Err: errors.New("down")}).Pick(context.Background(), seen)

	s.Equal(TierCurated, got.Tier)
	s.Equal("Only One", got.Topic)
}

func (s *SelectorTestSuite) TestDedupCuratedFallsThroughToDefault() {
	s.cfg.Curated = []string{"Only One"}
	s.cfg.DedupCurated = true
	seen := history.Set{"only-one": {}}
	got := s.selector(Static{Err: errors.New("down")}).Pick(context.Background(), seen)

	s.Equal(TierDefault, got.Tier)
	s.Equal("The Default Topic", got.Topic)
}

func (s *SelectorTestSuite) TestDedupCuratedKeepsFreshEntries() {
	s.cfg.DedupCurated = true
	seen := history.Set{"curated-one": {}, "curated-two": {}}
	got := s.selector(nil).Pick(context.Background(), seen)

	s.Equal(TierCurated, got.Tier)
	s.Equal("Curated Three", got.Topic)
}

func (s *SelectorTestSuite) TestErrorSkipsCuratedWhenConfigured() {
	off := false
	s.cfg.CuratedOnError = &off
	got := s.selector(Static{Err: errors.New("down")}).Pick(context.Background(), history.Set{})

	s.Equal(TierDefault, got.Tier)
}

func (s *SelectorTestSuite) TestEmptyCuratedUsesDefault() {
	s.cfg.Curated = nil
	got := s.selector(nil).Pick(context.Background(), history.Set{})

	s.Equal(Choice{Topic: "The Default Topic", Tier: TierDefault}, got)
}

func TestRankStableForTies(t *testing.T) {
	got := Rank([]string{"bbb", "a", "ccc", "bbb", "dd"})
	assert.Equal(t, []string{"bbb", "ccc", "dd", "a"}, got)
}

func TestIsFreshRejectsEmptySlug(t *testing.T) {
	assert.False(t, IsFresh("!!!", history.Set{}))
	assert.True(t, IsFresh("Vertex AI", history.Set{}))
}

func TestLiveNeverReturnsUsedSlug(t *testing.T) {
	seen := history.Set{"a-b": {}, "c": {}}
	src := Static{Topics: []string{"A B", "a-b", "C", "A  B!", "fresh one"}}
	got := NewSelector(src, nil, config.TopicsConfig{Default: "d"}, nil).Pick(context.Background(), seen)
	assert.Equal(t, "fresh one", got.Topic)
	assert.False(t, seen.Has("fresh-one"))
}
