package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aget-labs/bridge-cli/internal/adapters/driven/storage/memory"
	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

func TestHistoryService_List(t *testing.T) {
	store := memory.NewHistoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(context.Background(), &domain.PublicationRecord{
		ID: "id-1", PublicName: "a.py", ExtractedAt: base,
	}))
	require.NoError(t, store.Record(context.Background(), &domain.PublicationRecord{
		ID: "id-2", PublicName: "b.py", ExtractedAt: base.Add(time.Hour),
	}))

	svc := NewHistoryService(store)

	records, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b.py", records[0].PublicName)

	limited, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
