package generator

import "time"

// Mode selects the prompt template.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeDaily, ModeWeekly:
		return Mode(s), true
	}
	return "", false
}

// Request describes one generation call.
type Request struct {
	Topic string
	Mode  Mode
	Now   time.Time
}

// Result is the outcome of a generation call. OK=false means "use the
// fallback document"; Err only explains why.
type Result struct {
	Body    string
	OK      bool
	Err     error
	Elapsed time.Duration
}
