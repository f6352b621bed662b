package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/config"
	"github.com/lindenlab/check-tag-action/internal/logger"
	"github.com/lindenlab/check-tag-action/internal/orchestrator"
	"github.com/lindenlab/check-tag-action/internal/repository"
	"github.com/lindenlab/check-tag-action/internal/service"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo     repository.FileSystemRepository
	tagRepo    repository.TagRepository
	oracle     repository.TagOracle
	reportRepo repository.RunReportRepository
	ciSvc      service.CIOutputService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	tagRepo, err := repository.NewGitTagRepository(cfg.Root, cfg.Remote)
	if err != nil {
		return nil, err
	}

	// The GitHub API oracle is optional - the git transport answers
	// existence checks when no token is configured.
	oracle := repository.TagOracle(tagRepo)
	if cfg.UseGithubOracle() {
		oracle, err = repository.NewGithubTagOracle(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, err
		}
	}

	reportRepo := repository.NewJSONRunReportRepository(fsRepo, cfg.ReportDir)
	ciSvc := service.NewGithubOutputService(fsRepo, log)

	return &container{
		cfg:        cfg,
		log:        log,
		fsRepo:     fsRepo,
		tagRepo:    tagRepo,
		oracle:     oracle,
		reportRepo: reportRepo,
		ciSvc:      ciSvc,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}

	checkOrch := orchestrator.NewCheckOrchestrator(c.tagRepo, c.oracle, c.fsRepo, c.log)
	tagOrch := orchestrator.NewTagOrchestrator(c.tagRepo, c.fsRepo, c.reportRepo, c.ciSvc, c.log)

	tagCmd := NewTagCmd(c, tagOrch)
	rootCmd.AddCommand(NewCheckCmd(c, checkOrch))
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(newVersionCmd())

	// Default mode: running the bare binary behaves like "tag".
	rootCmd.RunE = tagCmd.RunE
	rootCmd.Flags().AddFlagSet(tagCmd.Flags())

	return nil
}
