package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lindenlab/check-tag-action/internal/repository"
)

// Mock for TagRepository
type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	args := m.Called(ctx, tag)
	return args.Bool(0), args.Error(1)
}

func (m *mockTagRepository) DefaultBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTagRepository) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTagRepository) CreateTag(ctx context.Context, tag, msg string) error {
	args := m.Called(ctx, tag, msg)
	return args.Error(0)
}

func (m *mockTagRepository) PushTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// Mock for RunReportRepository
type mockRunReportRepository struct {
	mock.Mock
	saved *repository.RunReport
}

func (m *mockRunReportRepository) Save(ctx context.Context, report *repository.RunReport) error {
	m.saved = report
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockRunReportRepository) Load(ctx context.Context, sessionID string) (*repository.RunReport, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.RunReport), args.Error(1)
}

// Mock for CIOutputService
type mockCIOutputService struct {
	mock.Mock
	tags []string
}

func (m *mockCIOutputService) EmitTag(ctx context.Context, name string) error {
	m.tags = append(m.tags, name)
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockCIOutputService) EmitTagList(ctx context.Context, names []string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}
