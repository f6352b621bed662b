package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/domain"
	"github.com/lindenlab/check-tag-action/internal/repository"
)

// CheckVersionUseCase validates that a declaration's base version has not
// already been tagged. On the default branch an existing tag is tolerated
// (a repeat run must stay idempotent); on any other branch it is a hard
// failure so the version file gets bumped before merge.

type CheckVersionUseCase struct {
	Oracle repository.TagOracle
	Log    *zap.Logger
}

// Execute runs the check for one resolved base version.
func (uc *CheckVersionUseCase) Execute(
	ctx context.Context,
	base domain.BaseVersion,
	branch domain.BranchContext,
) error {
	if base.Date {
		// Date tags are unique per day and never pre-validated.
		uc.Log.Info("date declaration, skipping existence check",
			zap.String("declaration", base.Declaration.Path()),
			zap.String("version", base.Name))
		return nil
	}
	exists, err := uc.Oracle.TagExists(ctx, base.Name)
	if err != nil {
		return fmt.Errorf("failed to check tag %s for %s: %w", base.Name, base.Declaration.Path(), err)
	}
	if !exists {
		uc.Log.Info("version not yet tagged",
			zap.String("declaration", base.Declaration.Path()),
			zap.String("tag", base.Name))
		return nil
	}
	if branch.OnDefault() {
		uc.Log.Warn("version already tagged, tolerated on default branch",
			zap.String("declaration", base.Declaration.Path()),
			zap.String("tag", base.Name),
			zap.String("branch", branch.Current))
		return nil
	}
	return fmt.Errorf("tag %s already exists on the remote: bump %s before merging",
		base.Name, base.Declaration.Path())
}
