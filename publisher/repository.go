package publisher

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

import "context"

// Signature identifies the author and committer of a commit.
type Signature struct {
	Name  string
	Email string
}

// Repository is the slice of version control the publisher needs.
type Repository interface {
	// Root is the working tree root on disk.
	Root() string
	// Add stages a path relative to Root.
	Add(path string) error
	// Commit records the staged changes and returns the commit id.
	Commit(msg string, who Signature) (string, error)
	RemoteURL(remote string) (string, error)
	// Push sends the current branch to remote. A non-empty url replaces the
	// configured address for this push only.
	Push(ctx context.Context, remote, url string) error
}
