package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/domain"
	"github.com/lindenlab/check-tag-action/internal/repository"
)

// CreateReleaseTagUseCase creates and pushes release tags on the default
// branch. Plain versions are tagged once and skipped on repeat runs; date
// versions get an ascending counter suffix for same-day re-releases.

type CreateReleaseTagUseCase struct {
	TagRepo     repository.TagRepository
	MaxAttempts int
	Log         *zap.Logger
}

// Execute allocates and pushes the release tag for base. It returns the tag
// name and whether a tag was actually created (false means the version was
// already tagged and the run skipped it).
func (uc *CreateReleaseTagUseCase) Execute(ctx context.Context, base domain.BaseVersion) (string, bool, error) {
	exists, err := uc.TagRepo.TagExists(ctx, base.Name)
	if err != nil {
		return "", false, fmt.Errorf("failed to check tag %s: %w", base.Name, err)
	}
	if !exists {
		if err := uc.createAndPush(ctx, base.Name); err != nil {
			return "", false, err
		}
		return base.Name, true, nil
	}
	if !base.Date {
		uc.Log.Info("version already tagged, skipping",
			zap.String("declaration", base.Declaration.Path()),
			zap.String("tag", base.Name))
		return base.Name, false, nil
	}
	// Same-day re-release: find the first free counter.
	tag, found, err := FirstFreeSuffix(ctx, func(counter int) string {
		return fmt.Sprintf("%s.%d", base.Name, counter)
	}, uc.TagRepo.TagExists, uc.MaxAttempts)
	if err != nil {
		return "", false, fmt.Errorf("failed to allocate counter for %s: %w", base.Name, err)
	}
	if !found {
		return "", false, fmt.Errorf(
			"no free counter below %d for %s (declaration %s): tag suffix space exhausted",
			uc.MaxAttempts, base.Name, base.Declaration.Path())
	}
	if err := uc.createAndPush(ctx, tag); err != nil {
		return "", false, err
	}
	return tag, true, nil
}

func (uc *CreateReleaseTagUseCase) createAndPush(ctx context.Context, tag string) error {
	if err := uc.TagRepo.CreateTag(ctx, tag, fmt.Sprintf("Release %s", tag)); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	if err := uc.TagRepo.PushTag(ctx, tag); err != nil {
		return fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return nil
}
