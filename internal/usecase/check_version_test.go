package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lindenlab/check-tag-action/internal/domain"
)

func TestCheckVersionUseCase_Execute(t *testing.T) {
	mainCtx := domain.BranchContext{Current: "main", Default: "main"}
	featureCtx := domain.BranchContext{Current: "feature/x", Default: "main"}
	resolve := func(content string) domain.BaseVersion {
		return domain.Declaration{Content: content}.Resolve(time.Now())
	}
	t.Run("Should pass when the version is not yet tagged", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		ctx := context.Background()
		tagRepo.On("TagExists", ctx, "v1.2.3").Return(false, nil)
		err := uc.Execute(ctx, resolve("1.2.3"), featureCtx)
		require.NoError(t, err)
		tagRepo.AssertExpectations(t)
	})
	t.Run("Should always pass date declarations without querying the remote", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		err := uc.Execute(context.Background(), resolve("date"), featureCtx)
		require.NoError(t, err)
		tagRepo.AssertNotCalled(t, "TagExists")
	})
	t.Run("Should tolerate an existing tag on the default branch", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		ctx := context.Background()
		tagRepo.On("TagExists", ctx, "v1.2.3").Return(true, nil)
		err := uc.Execute(ctx, resolve("1.2.3"), mainCtx)
		require.NoError(t, err)
		tagRepo.AssertExpectations(t)
	})
	t.Run("Should fail for an existing tag on a feature branch", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		ctx := context.Background()
		tagRepo.On("TagExists", ctx, "v1.2.3").Return(true, nil)
		err := uc.Execute(ctx, resolve("1.2.3"), featureCtx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "v1.2.3")
		assert.Contains(t, err.Error(), "bump Version")
		tagRepo.AssertExpectations(t)
	})
	t.Run("Should name the declaration in the failure message", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		ctx := context.Background()
		base := domain.Declaration{Location: "service1", Content: "1.2.3"}.Resolve(time.Now())
		tagRepo.On("TagExists", ctx, "service1/v1.2.3").Return(true, nil)
		err := uc.Execute(ctx, base, featureCtx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service1/Version")
	})
	t.Run("Should propagate oracle errors", func(t *testing.T) {
		tagRepo := new(mockTagRepository)
		uc := &CheckVersionUseCase{Oracle: tagRepo, Log: zap.NewNop()}
		ctx := context.Background()
		expectedErr := errors.New("remote unavailable")
		tagRepo.On("TagExists", ctx, "v1.2.3").Return(false, expectedErr)
		err := uc.Execute(ctx, resolve("1.2.3"), featureCtx)
		assert.ErrorIs(t, err, expectedErr)
	})
}
