package publisher

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitRepository implements Repository on top of go-git.
type GitRepository struct {
	root string
	repo *git.Repository
}

// OpenGitRepository opens the repository containing path.
func OpenGitRepository(path string) (*GitRepository, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("worktree: %w", err)
	}
	return &GitRepository{root: wt.Filesystem.Root(), repo: r}, nil
}

func (g *GitRepository) Root() string { return g.root }

func (g *GitRepository) Add(path string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}
	if _, err := wt.Add(path); err != nil {
		return fmt.Errorf("git add %s: %w", path, err)
	}
	return nil
}

func (g *GitRepository) Commit(msg string, who Signature) (string, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("worktree: %w", err)
	}
	sig := &object.Signature{Name: who.Name, Email: who.Email, When: time.Now()}
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	return hash.String(), nil
}

func (g *GitRepository) RemoteURL(remote string) (string, error) {
	rem, err := g.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("remote %s: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no url", remote)
	}
	return urls[0], nil
}

// Push pushes HEAD. When url carries userinfo it is also sent as basic auth;
// neither is written to the repository config.
func (g *GitRepository) Push(ctx context.Context, remote, url string) error {
	head, err := g.repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	ref := head.Name().String()
	opts := &git.PushOptions{
		RemoteName: remote,
		RemoteURL:  url,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(ref + ":" + ref)},
	}
	if u, perr := neturl.Parse(url); perr == nil && u.User != nil {
		pw, _ := u.User.Password()
		opts.Auth = &githttp.BasicAuth{Username: u.User.Username(), Password: pw}
	}
	err = g.repo.PushContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}
