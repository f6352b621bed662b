package repository

import (
	"context"

	"go.uber.org/zap"
)

// dryRunTagRepository wraps a TagRepository so that every mutating call is
// replaced with a logged no-op. Reads pass through, which keeps the
// decision flow of a dry run identical to a live run.
type dryRunTagRepository struct {
	inner TagRepository
	log   *zap.Logger
}

// NewDryRunTagRepository decorates repo for dry-run execution.
func NewDryRunTagRepository(repo TagRepository, log *zap.Logger) TagRepository {
	return &dryRunTagRepository{inner: repo, log: log}
}

func (r *dryRunTagRepository) DefaultBranch(ctx context.Context) (string, error) {
	return r.inner.DefaultBranch(ctx)
}

func (r *dryRunTagRepository) CurrentBranch(ctx context.Context) (string, error) {
	return r.inner.CurrentBranch(ctx)
}

func (r *dryRunTagRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	return r.inner.TagExists(ctx, tag)
}

func (r *dryRunTagRepository) CreateTag(_ context.Context, tag, msg string) error {
	r.log.Info("dry-run: would create tag", zap.String("tag", tag), zap.String("message", msg))
	return nil
}

func (r *dryRunTagRepository) PushTag(_ context.Context, tag string) error {
	r.log.Info("dry-run: would push tag", zap.String("tag", tag))
	return nil
}
