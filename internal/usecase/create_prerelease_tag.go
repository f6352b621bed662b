package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/domain"
	"github.com/lindenlab/check-tag-action/internal/repository"
)

// CreatePrereleaseTagUseCase creates and pushes prerelease tags on
// non-default branches. Candidates are {base}-{sanitized branch}.{counter}
// with the first free counter allocated.

type CreatePrereleaseTagUseCase struct {
	TagRepo     repository.TagRepository
	MaxAttempts int
	Log         *zap.Logger
}

// Execute allocates and pushes the prerelease tag for base on the given
// branch and returns the tag name.
func (uc *CreatePrereleaseTagUseCase) Execute(
	ctx context.Context,
	base domain.BaseVersion,
	branch string,
) (string, error) {
	suffix := domain.SanitizedRef(branch)
	tag, found, err := FirstFreeSuffix(ctx, func(counter int) string {
		return fmt.Sprintf("%s-%s.%d", base.Name, suffix, counter)
	}, uc.TagRepo.TagExists, uc.MaxAttempts)
	if err != nil {
		return "", fmt.Errorf("failed to allocate counter for %s-%s: %w", base.Name, suffix, err)
	}
	if !found {
		return "", fmt.Errorf(
			"no free counter below %d for %s-%s (declaration %s): tag suffix space exhausted",
			uc.MaxAttempts, base.Name, suffix, base.Declaration.Path())
	}
	uc.Log.Info("allocated prerelease tag",
		zap.String("declaration", base.Declaration.Path()),
		zap.String("tag", tag),
		zap.String("branch", branch))
	if err := uc.TagRepo.CreateTag(ctx, tag, fmt.Sprintf("Prerelease %s", tag)); err != nil {
		return "", fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	if err := uc.TagRepo.PushTag(ctx, tag); err != nil {
		return "", fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return tag, nil
}
