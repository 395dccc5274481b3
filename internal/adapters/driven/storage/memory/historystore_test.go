package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

func TestHistoryStore(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records and lists most recent first", func(t *testing.T) {
		store := NewHistoryStore()

		for i := 0; i < 3; i++ {
			require.NoError(t, store.Record(context.Background(), &domain.PublicationRecord{
				ID:          fmt.Sprintf("id-%d", i),
				PublicName:  fmt.Sprintf("tool-%d.py", i),
				ExtractedAt: base.Add(time.Duration(i) * time.Hour),
			}))
		}

		records, err := store.List(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "tool-2.py", records[0].PublicName)
		assert.Equal(t, "tool-0.py", records[2].PublicName)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		store := NewHistoryStore()
		for i := 0; i < 4; i++ {
			require.NoError(t, store.Record(context.Background(), &domain.PublicationRecord{
				ID:          fmt.Sprintf("id-%d", i),
				ExtractedAt: base.Add(time.Duration(i) * time.Hour),
			}))
		}

		records, err := store.List(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("nil record is rejected", func(t *testing.T) {
		store := NewHistoryStore()
		assert.ErrorIs(t, store.Record(context.Background(), nil), domain.ErrNotFound)
	})

	t.Run("stored records are copies", func(t *testing.T) {
		store := NewHistoryStore()
		rec := &domain.PublicationRecord{ID: "id-1", PublicName: "a.py", ExtractedAt: base}
		require.NoError(t, store.Record(context.Background(), rec))

		rec.PublicName = "mutated.py"

		records, err := store.List(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "a.py", records[0].PublicName)
	})
}
