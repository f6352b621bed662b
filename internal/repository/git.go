package repository

import "context"

// TagOracle answers whether a tag already exists on the remote.

type TagOracle interface {
	TagExists(ctx context.Context, tag string) (bool, error)
}

// TagRepository defines the interface for git operations against the remote
// tag namespace. Tags are immutable once pushed; there is no delete.

type TagRepository interface {
	TagOracle
	DefaultBranch(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	CreateTag(ctx context.Context, tag, msg string) error
	PushTag(ctx context.Context, tag string) error
}
