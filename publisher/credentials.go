package publisher

import (
	"fmt"
	"net/url"
	"strings"
)

const tokenUser = "x-access-token"

// InjectToken returns raw with x-access-token:<token> as userinfo. Only https
// URLs without existing credentials are rewritten; anything else (ssh, local
// paths, URLs that already carry a user) is returned unchanged with false.
func InjectToken(raw, token string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" || u.User != nil {
		return raw, false
	}
	u.User = url.UserPassword(tokenUser, token)
	return u.String(), true
}

// WithAuthenticatedRemote hands fn a token-bearing URL for remote. The URL
// only exists in memory for the duration of fn; the repository config is
// never modified, so a killed process cannot leave the token on disk. Remotes
// that cannot carry the token get an empty url and use their own transport
// credentials.
func WithAuthenticatedRemote(repo Repository, remote, token string, fn func(url string) error) error {
	orig, err := repo.RemoteURL(remote)
	if err != nil {
		return fmt.Errorf("read remote url: %w", err)
	}
	authed, ok := InjectToken(orig, token)
	if !ok {
		return fn("")
	}
	return Scrub(fn(authed), token)
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }

// Scrub masks every occurrence of secret in err's message. errors.Is and
// errors.As still see the wrapped error.
func Scrub(err error, secret string) error {
	if err == nil || secret == "" || !strings.Contains(err.Error(), secret) {
		return err
	}
	return &scrubbedError{msg: strings.ReplaceAll(err.Error(), secret, "***"), err: err}
}
