package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterCandidate(base string) func(int) string {
	return func(counter int) string {
		return fmt.Sprintf("%s.%d", base, counter)
	}
}

func TestFirstFreeSuffix(t *testing.T) {
	ctx := context.Background()
	t.Run("Should pick counter 1 when nothing is taken", func(t *testing.T) {
		tag, found, err := FirstFreeSuffix(ctx, counterCandidate("v1.2.3"), func(_ context.Context, _ string) (bool, error) {
			return false, nil
		}, 50)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1.2.3.1", tag)
	})
	t.Run("Should pick the first free counter after a taken prefix", func(t *testing.T) {
		taken := map[string]bool{
			"v1.2.3.1": true,
			"v1.2.3.2": true,
			"v1.2.3.3": true,
			"v1.2.3.4": true,
		}
		var queried []string
		tag, found, err := FirstFreeSuffix(ctx, counterCandidate("v1.2.3"), func(_ context.Context, candidate string) (bool, error) {
			queried = append(queried, candidate)
			return taken[candidate], nil
		}, 50)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1.2.3.5", tag)
		// Strictly ascending first-fit: nothing revisited, nothing beyond the hit.
		assert.Equal(t, []string{"v1.2.3.1", "v1.2.3.2", "v1.2.3.3", "v1.2.3.4", "v1.2.3.5"}, queried)
	})
	t.Run("Should report exhaustion when every counter below the bound is taken", func(t *testing.T) {
		var last string
		tag, found, err := FirstFreeSuffix(ctx, counterCandidate("v1.2.3"), func(_ context.Context, candidate string) (bool, error) {
			last = candidate
			return true, nil
		}, 50)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, tag)
		// The bound is exclusive: .49 is the last candidate tried, never .50.
		assert.Equal(t, "v1.2.3.49", last)
	})
	t.Run("Should propagate predicate errors", func(t *testing.T) {
		expectedErr := errors.New("remote unavailable")
		_, found, err := FirstFreeSuffix(ctx, counterCandidate("v1.2.3"), func(_ context.Context, _ string) (bool, error) {
			return false, expectedErr
		}, 50)
		assert.ErrorIs(t, err, expectedErr)
		assert.False(t, found)
	})
}
