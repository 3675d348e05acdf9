package topic

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"auto_blog_article_publisher/config"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// GoogleTrends queries the public Google Trends endpoints: the daily trending
// RSS feed and the "rising" related queries of each seed keyword.
type GoogleTrends struct {
	cfg     config.TrendsConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

type rssFeed struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

type relatedWidget struct {
	Keyword string
	Request string
	Token   string
}

func NewGoogleTrends(cfg config.TrendsConfig, logger *slog.Logger) (*GoogleTrends, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("trends base_url is required")
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoogleTrends{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout, Jar: jar},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With("source", "google_trends"),
	}, nil
}

// Candidates returns trending searches followed by the rising related queries
// of every seed. Individual request failures are skipped; an error is returned
// only when nothing could be fetched at all.
func (g *GoogleTrends) Candidates(ctx context.Context, seeds []string) ([]string, error) {
	// Google hands out the NID cookie on the landing page; the API endpoints
	// answer 429 without it.
	if _, err := g.get(ctx, "/", url.Values{"geo": {g.cfg.Geo}}); err != nil {
		return nil, fmt.Errorf("prime session: %w", err)
	}

	var (
		out  []string
		errs []error
	)

	trending, err := g.trending(ctx)
	if err != nil {
		g.logger.Warn("trending searches failed", "error", err)
		errs = append(errs, err)
	}
	out = append(out, trending...)

	rising, err := g.rising(ctx, seeds)
	if err != nil {
		g.logger.Warn("related queries failed", "error", err)
		errs = append(errs, err)
	}
	out = append(out, rising...)

	if len(errs) == 2 {
		return nil, errors.Join(errs...)
	}
	g.logger.Debug("fetched trend candidates", "trending", len(trending), "rising", len(rising))
	return out, nil
}

func (g *GoogleTrends) trending(ctx context.Context) ([]string, error) {
	body, err := g.get(ctx, "/trending/rss", url.Values{"geo": {g.cfg.Geo}})
	if err != nil {
		return nil, err
	}
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode trending rss: %w", err)
	}
	var out []string
	for _, it := range feed.Channel.Items {
		if len(out) == g.cfg.TrendingLimit {
			break
		}
		if t := strings.TrimSpace(it.Title); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

func (g *GoogleTrends) rising(ctx context.Context, seeds []string) ([]string, error) {
	if len(seeds) == 0 {
		return nil, nil
	}
	widgets, err := g.explore(ctx, seeds)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, w := range widgets {
		q := g.baseQuery()
		q.Set("req", w.Request)
		q.Set("token", w.Token)
		body, err := g.get(ctx, "/trends/api/widgetdata/relatedsearches", q)
		if err != nil {
			g.logger.Debug("related queries for seed failed", "seed", w.Keyword, "error", err)
			continue
		}
		queries := gjson.GetBytes(stripGuard(body), "default.rankedList.1.rankedKeyword.#.query").Array()
		for i, r := range queries {
			if i == g.cfg.RisingLimit {
				break
			}
			out = append(out, r.String())
		}
	}
	return out, nil
}

func (g *GoogleTrends) explore(ctx context.Context, seeds []string) ([]relatedWidget, error) {
	type comparisonItem struct {
		Keyword string `json:"keyword"`
		Time    string `json:"time"`
		Geo     string `json:"geo"`
	}
	payload := struct {
		ComparisonItem []comparisonItem `json:"comparisonItem"`
		Category       int              `json:"category"`
		Property       string           `json:"property"`
	}{Property: g.cfg.Property}
	for _, s := range seeds {
		payload.ComparisonItem = append(payload.ComparisonItem, comparisonItem{Keyword: s, Time: g.cfg.Timeframe, Geo: g.cfg.Geo})
	}
	req, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal explore request: %w", err)
	}

	q := g.baseQuery()
	q.Set("req", string(req))
	body, err := g.get(ctx, "/trends/api/explore", q)
	if err != nil {
		return nil, err
	}

	var widgets []relatedWidget
	gjson.GetBytes(stripGuard(body), "widgets").ForEach(func(_, w gjson.Result) bool {
		if !strings.HasPrefix(w.Get("id").String(), "RELATED_QUERIES") {
			return true
		}
		widgets = append(widgets, relatedWidget{
			Keyword: w.Get("request.restriction.complexKeywordsRestriction.keyword.0.value").String(),
			Request: w.Get("request").Raw,
			Token:   w.Get("token").String(),
		})
		return true
	})
	if len(widgets) == 0 {
		return nil, errors.New("explore returned no related-queries widgets")
	}
	return widgets, nil
}

func (g *GoogleTrends) baseQuery() url.Values {
	return url.Values{
		"hl": {g.cfg.Language},
		"tz": {strconv.Itoa(g.cfg.TZOffset)},
	}
}

func (g *GoogleTrends) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	u := strings.TrimRight(g.cfg.BaseURL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", g.cfg.Language)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// stripGuard drops the ")]}'" anti-JSON-hijacking prefix the API puts in
// front of every payload.
func stripGuard(b []byte) []byte {
	if i := bytes.IndexByte(b, '{'); i > 0 {
		return b[i:]
	}
	return b
}
