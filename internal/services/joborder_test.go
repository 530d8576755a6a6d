package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "inventory-system/pkg/errors"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return date
}

func TestJoNumberAllocatorPrefix(t *testing.T) {
	allocator := NewJoNumberAllocator(&fakeHistoryRepo{}, zap.NewNop())

	assert.Equal(t, "JO-24-05-", allocator.Prefix(mustDate(t, "2024-05-17")))
	assert.Equal(t, "JO-26-12-", allocator.Prefix(mustDate(t, "2026-12-01")))
}

func TestJoNumberAllocatorNext(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at 001 for an empty month", func(t *testing.T) {
		repo := &fakeHistoryRepo{existing: map[string]bool{}}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		joNumber, err := allocator.Next(ctx, mustDate(t, "2024-05-17"))
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-001", joNumber)
	})

	t.Run("continues after the latest allocated number", func(t *testing.T) {
		repo := &fakeHistoryRepo{
			latestJoNumber: "JO-24-05-002",
			existing:       map[string]bool{"JO-24-05-002": true},
		}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		joNumber, err := allocator.Next(ctx, mustDate(t, "2024-05-31"))
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-003", joNumber)
	})

	t.Run("probes past client-supplied numbers above the run", func(t *testing.T) {
		repo := &fakeHistoryRepo{
			latestJoNumber: "JO-24-05-002",
			existing: map[string]bool{
				"JO-24-05-002": true,
				"JO-24-05-003": true,
				"JO-24-05-004": true,
			},
		}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		joNumber, err := allocator.Next(ctx, mustDate(t, "2024-05-31"))
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-005", joNumber)
	})

	t.Run("months allocate independently", func(t *testing.T) {
		repo := &fakeHistoryRepo{existing: map[string]bool{"JO-24-05-002": true}}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		joNumber, err := allocator.Next(ctx, mustDate(t, "2024-06-01"))
		require.NoError(t, err)
		assert.Equal(t, "JO-24-06-001", joNumber)
	})

	t.Run("restarts the probe when the stored number is unparseable", func(t *testing.T) {
		repo := &fakeHistoryRepo{
			latestJoNumber: "JO-24-05-XYZ",
			existing:       map[string]bool{"JO-24-05-XYZ": true},
		}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		joNumber, err := allocator.Next(ctx, mustDate(t, "2024-05-31"))
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-001", joNumber)
	})

	t.Run("exhausted month", func(t *testing.T) {
		repo := &fakeHistoryRepo{
			latestJoNumber: "JO-24-05-999",
			existing:       map[string]bool{"JO-24-05-999": true},
		}
		allocator := NewJoNumberAllocator(repo, zap.NewNop())

		_, err := allocator.Next(ctx, mustDate(t, "2024-05-31"))
		assert.ErrorIs(t, err, apperrors.ErrAllocationExhausted)
	})
}

func TestParseSequence(t *testing.T) {
	seq, err := parseSequence("JO-24-05-042", "JO-24-05-")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	_, err = parseSequence("JO-24-06-001", "JO-24-05-")
	assert.Error(t, err)

	_, err = parseSequence("JO-24-05-ABC", "JO-24-05-")
	assert.Error(t, err)
}
