package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/repository"
	"github.com/lindenlab/check-tag-action/internal/service"
	"github.com/lindenlab/check-tag-action/internal/usecase"
)

// TagConfig holds configuration for one tag run.
type TagConfig struct {
	Root        string // tree to scan for Version declarations
	DryRun      bool   // substitute mutations with logged no-ops
	MaxAttempts int    // exclusive upper bound for counter suffixes
}

// TagOrchestrator creates and pushes one tag per declaration: release or
// dated release on the default branch, prerelease elsewhere. Declarations
// are processed strictly in order and the first failure aborts the run.
type TagOrchestrator struct {
	tagRepo    repository.TagRepository
	fsRepo     repository.FileSystemRepository
	reportRepo repository.RunReportRepository
	ciSvc      service.CIOutputService
	log        *zap.Logger
}

// NewTagOrchestrator creates a new TagOrchestrator.
func NewTagOrchestrator(
	tagRepo repository.TagRepository,
	fsRepo repository.FileSystemRepository,
	reportRepo repository.RunReportRepository,
	ciSvc service.CIOutputService,
	log *zap.Logger,
) *TagOrchestrator {
	return &TagOrchestrator{
		tagRepo:    tagRepo,
		fsRepo:     fsRepo,
		reportRepo: reportRepo,
		ciSvc:      ciSvc,
		log:        log,
	}
}

// Execute runs the tag workflow over all declarations.
func (o *TagOrchestrator) Execute(ctx context.Context, cfg TagConfig) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()
	discover := &usecase.DiscoverDeclarationsUseCase{Fs: o.fsRepo, Root: cfg.Root}
	declarations, err := discover.Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to discover declarations: %w", err)
	}
	if len(declarations) == 0 {
		o.log.Info("no Version declarations found, nothing to tag")
		return nil
	}
	branch, err := ResolveBranchContext(ctx, o.tagRepo)
	if err != nil {
		return err
	}
	tagRepo := o.tagRepo
	if cfg.DryRun {
		tagRepo = repository.NewDryRunTagRepository(tagRepo, o.log)
	}
	report := repository.NewRunReport(ModeTag, branch, cfg.DryRun)
	release := &usecase.CreateReleaseTagUseCase{TagRepo: tagRepo, MaxAttempts: cfg.MaxAttempts, Log: o.log}
	prerelease := &usecase.CreatePrereleaseTagUseCase{TagRepo: tagRepo, MaxAttempts: cfg.MaxAttempts, Log: o.log}
	for _, decl := range declarations {
		base := decl.Resolve(time.Now())
		if branch.OnDefault() {
			name, created, err := release.Execute(ctx, base)
			if err != nil {
				o.finishReport(ctx, report, "failed")
				return err
			}
			if !created {
				continue
			}
			kind := "release"
			if base.Date {
				kind = "date"
			}
			if err := o.recordTag(ctx, report, repository.CreatedTag{
				Name:        name,
				Declaration: decl.Path(),
				Kind:        kind,
			}); err != nil {
				return err
			}
			continue
		}
		name, err := prerelease.Execute(ctx, base, branch.Current)
		if err != nil {
			o.finishReport(ctx, report, "failed")
			return err
		}
		if err := o.recordTag(ctx, report, repository.CreatedTag{
			Name:        name,
			Declaration: decl.Path(),
			Kind:        "prerelease",
		}); err != nil {
			return err
		}
	}
	if err := o.ciSvc.EmitTagList(ctx, report.TagNames()); err != nil {
		return fmt.Errorf("failed to publish tag list: %w", err)
	}
	o.finishReport(ctx, report, "completed")
	o.log.Info("tag run completed",
		zap.Int("declarations", len(declarations)),
		zap.Strings("created", report.TagNames()),
		zap.Bool("dry_run", cfg.DryRun))
	return nil
}

// recordTag adds a created tag to the report and publishes it to the
// pipeline output.
func (o *TagOrchestrator) recordTag(ctx context.Context, report *repository.RunReport, tag repository.CreatedTag) error {
	report.AddTag(tag)
	o.log.Info("created tag",
		zap.String("tag", tag.Name),
		zap.String("declaration", tag.Declaration),
		zap.String("kind", tag.Kind))
	if err := o.ciSvc.EmitTag(ctx, tag.Name); err != nil {
		return fmt.Errorf("failed to publish tag %s: %w", tag.Name, err)
	}
	return nil
}

// finishReport saves the report best-effort; a report write never fails the
// run itself.
func (o *TagOrchestrator) finishReport(ctx context.Context, report *repository.RunReport, status string) {
	report.Finish(status)
	if err := o.reportRepo.Save(ctx, report); err != nil {
		o.log.Warn("failed to save run report",
			zap.String("session_id", report.SessionID),
			zap.Error(err))
	}
}
