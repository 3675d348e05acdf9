// Package topic picks the subject of the next post: live trends first, then a
// curated list, then a fixed default.
package topic

import "context"

// TrendSource returns ranked candidate topics for the given seed keywords.
type TrendSource interface {
	Candidates(ctx context.Context, seeds []string) ([]string, error)
}

// Static is a deterministic TrendSource for tests and offline runs.
type Static struct {
	Topics []string
	Err    error
}

func (s Static) Candidates(ctx context.Context, _ []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]string(nil), s.Topics...), nil
}
