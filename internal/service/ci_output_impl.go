package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// githubOutputService appends results to the GITHUB_OUTPUT file so that
// downstream workflow steps can consume them.
type githubOutputService struct {
	fs   afero.Fs
	path string
	log  *zap.Logger
}

// NewGithubOutputService creates a CIOutputService writing to the file named
// by the GITHUB_OUTPUT environment variable. Outside GitHub Actions the
// service logs results instead of writing them.
func NewGithubOutputService(fs afero.Fs, log *zap.Logger) CIOutputService {
	return &githubOutputService{fs: fs, path: os.Getenv("GITHUB_OUTPUT"), log: log}
}

// NewGithubOutputServiceAt creates a CIOutputService writing to an explicit
// output file path.
func NewGithubOutputServiceAt(fs afero.Fs, path string, log *zap.Logger) CIOutputService {
	return &githubOutputService{fs: fs, path: path, log: log}
}

// EmitTag publishes one created tag as tag=<name>.
func (s *githubOutputService) EmitTag(_ context.Context, name string) error {
	return s.appendLine(fmt.Sprintf("tag=%s", name))
}

// EmitTagList publishes all created tags as tags=<comma separated list>.
func (s *githubOutputService) EmitTagList(_ context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return s.appendLine(fmt.Sprintf("tags=%s", strings.Join(names, ",")))
}

func (s *githubOutputService) appendLine(line string) error {
	if s.path == "" {
		s.log.Info("no GITHUB_OUTPUT file configured", zap.String("output", line))
		return nil
	}
	file, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", s.path, err)
	}
	defer file.Close()
	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", s.path, err)
	}
	return nil
}
