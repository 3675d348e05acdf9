package publisher

import (
	"context"
	"errors"
)

// ErrNotVersioned is returned by Local for every version-control operation.
var ErrNotVersioned = errors.New("directory is not under version control")

// Local is a Repository backed by a plain directory. Only Publisher.Write
// works against it; dry runs use it so no repository is needed.
type Local string

func (l Local) Root() string                             { return string(l) }
func (Local) Add(string) error                           { return ErrNotVersioned }
func (Local) Commit(string, Signature) (string, error)   { return "", ErrNotVersioned }
func (Local) RemoteURL(string) (string, error)           { return "", ErrNotVersioned }
func (Local) Push(context.Context, string, string) error { return ErrNotVersioned }
