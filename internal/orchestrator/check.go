package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/domain"
	"github.com/lindenlab/check-tag-action/internal/repository"
	"github.com/lindenlab/check-tag-action/internal/usecase"
)

// CheckConfig holds configuration for one check run.
type CheckConfig struct {
	Root string // tree to scan for Version declarations
}

// CheckOrchestrator validates every declaration in the tree against the
// remote tag namespace without mutating anything. It is the gate run on
// pull requests.
type CheckOrchestrator struct {
	gitRepo repository.TagRepository
	oracle  repository.TagOracle
	fsRepo  repository.FileSystemRepository
	log     *zap.Logger
}

// NewCheckOrchestrator creates a new CheckOrchestrator. The oracle may be a
// different backend than the git repository (e.g. the GitHub API).
func NewCheckOrchestrator(
	gitRepo repository.TagRepository,
	oracle repository.TagOracle,
	fsRepo repository.FileSystemRepository,
	log *zap.Logger,
) *CheckOrchestrator {
	return &CheckOrchestrator{
		gitRepo: gitRepo,
		oracle:  oracle,
		fsRepo:  fsRepo,
		log:     log,
	}
}

// Execute runs the check over all declarations, failing fast on the first
// violation.
func (o *CheckOrchestrator) Execute(ctx context.Context, cfg CheckConfig) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()
	discover := &usecase.DiscoverDeclarationsUseCase{Fs: o.fsRepo, Root: cfg.Root}
	declarations, err := discover.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover declarations: %w", err)
	}
	if len(declarations) == 0 {
		o.log.Info("no Version declarations found, nothing to check")
		return nil
	}
	branch, err := ResolveBranchContext(ctx, o.gitRepo)
	if err != nil {
		return err
	}
	o.log.Info("checking declarations",
		zap.Int("count", len(declarations)),
		zap.String("branch", branch.Current),
		zap.String("default_branch", branch.Default))
	check := &usecase.CheckVersionUseCase{Oracle: o.oracle, Log: o.log}
	for _, decl := range declarations {
		base := decl.Resolve(time.Now())
		if !base.Date && !decl.SemverLike() {
			o.log.Debug("declaration content is not a semantic version, using verbatim",
				zap.String("declaration", decl.Path()),
				zap.String("tag", base.Name))
		}
		if err := check.Execute(ctx, base, branch); err != nil {
			return err
		}
	}
	o.log.Info("all declarations pass", zap.Int("count", len(declarations)))
	return nil
}

// ResolveBranchContext reads the current branch and the remote's default
// branch once for a run.
func ResolveBranchContext(ctx context.Context, repo repository.TagRepository) (domain.BranchContext, error) {
	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return domain.BranchContext{}, fmt.Errorf("failed to resolve current branch: %w", err)
	}
	defaultBranch, err := repo.DefaultBranch(ctx)
	if err != nil {
		return domain.BranchContext{}, fmt.Errorf("failed to resolve default branch: %w", err)
	}
	return domain.BranchContext{Current: current, Default: defaultBranch}, nil
}
