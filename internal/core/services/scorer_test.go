package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

func TestScorer_Score(t *testing.T) {
	cfg := domain.DefaultExtractionConfig()
	scorer := NewScorer(cfg)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("documented tested recent file scores high", func(t *testing.T) {
		c := domain.Candidate{
			Path:             "tools/convert.py",
			SizeBytes:        2048,
			ModifiedAt:       now.Add(-24 * time.Hour),
			HasDocumentation: true,
			HasTests:         true,
		}

		score := scorer.Score(c, now)
		assert.InDelta(t, 0.877, score, 0.005)
		assert.GreaterOrEqual(t, score, cfg.Threshold)
	})

	t.Run("tiny stale file scores near zero", func(t *testing.T) {
		c := domain.Candidate{
			Path:       "notes/scratch.txt",
			SizeBytes:  50,
			ModifiedAt: now.Add(-200 * 24 * time.Hour),
		}

		score := scorer.Score(c, now)
		assert.Less(t, score, 0.1)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		c := domain.Candidate{
			Path:       "data/report.json",
			SizeBytes:  4096,
			ModifiedAt: now.Add(-10 * 24 * time.Hour),
			HasTests:   true,
		}

		assert.Equal(t, scorer.Score(c, now), scorer.Score(c, now))
	})

	t.Run("score stays within unit interval", func(t *testing.T) {
		c := domain.Candidate{
			Path:             "big.bin",
			SizeBytes:        1 << 40,
			ModifiedAt:       now,
			HasDocumentation: true,
			HasTests:         true,
		}

		score := scorer.Score(c, now)
		assert.LessOrEqual(t, score, 1.0)
		assert.GreaterOrEqual(t, score, 0.0)
	})

	t.Run("zero weight sum yields zero", func(t *testing.T) {
		empty := NewScorer(domain.ExtractionConfig{})
		assert.Zero(t, empty.Score(domain.Candidate{SizeBytes: 1024, ModifiedAt: now}, now))
	})
}

func TestScorer_ScoreAll(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ordered by descending score then path", func(t *testing.T) {
		cfg := domain.DefaultExtractionConfig()
		scorer := NewScorer(cfg)

		candidates := []domain.Candidate{
			{Path: "c.txt", SizeBytes: 10, ModifiedAt: now.Add(-300 * 24 * time.Hour)},
			{Path: "a.py", SizeBytes: 2048, ModifiedAt: now, HasDocumentation: true, HasTests: true},
			{Path: "b.py", SizeBytes: 2048, ModifiedAt: now, HasDocumentation: true, HasTests: true},
		}

		scored := scorer.ScoreAll(candidates, now)
		require.Len(t, scored, 3)
		assert.Equal(t, "a.py", scored[0].Path)
		assert.Equal(t, "b.py", scored[1].Path)
		assert.Equal(t, "c.txt", scored[2].Path)
		assert.Equal(t, scored[0].Score, scored[1].Score)
	})

	t.Run("threshold boundary is inclusive", func(t *testing.T) {
		cfg := domain.ExtractionConfig{
			WeightDocs:      0.5,
			WeightTests:     0.5,
			Threshold:       0.5,
			StalenessWindow: 90 * 24 * time.Hour,
		}
		scorer := NewScorer(cfg)

		scored := scorer.ScoreAll([]domain.Candidate{
			{Path: "docs-only.md", ModifiedAt: now, HasDocumentation: true},
		}, now)

		require.Len(t, scored, 1)
		assert.InDelta(t, 0.5, scored[0].Score, 1e-9)
		assert.True(t, scored[0].Eligible)
	})

	t.Run("below threshold is not eligible", func(t *testing.T) {
		cfg := domain.DefaultExtractionConfig()
		scorer := NewScorer(cfg)

		scored := scorer.ScoreAll([]domain.Candidate{
			{Path: "old.txt", SizeBytes: 50, ModifiedAt: now.Add(-200 * 24 * time.Hour)},
		}, now)

		require.Len(t, scored, 1)
		assert.False(t, scored[0].Eligible)
	})
}

func TestSizeSignal(t *testing.T) {
	assert.Zero(t, sizeSignal(0))
	assert.Zero(t, sizeSignal(-1))
	assert.InDelta(t, 0.5, sizeSignal(sizePivot), 1e-9)

	// Monotonic and saturating.
	assert.Less(t, sizeSignal(1024), sizeSignal(8192))
	assert.Less(t, sizeSignal(1<<30), 1.0)
}

func TestRecencySignal(t *testing.T) {
	window := 90 * 24 * time.Hour

	assert.Equal(t, 1.0, recencySignal(0, window))
	assert.Equal(t, 1.0, recencySignal(-time.Hour, window))
	assert.Zero(t, recencySignal(window, window))
	assert.Zero(t, recencySignal(window+time.Hour, window))
	assert.InDelta(t, 0.5, recencySignal(45*24*time.Hour, window), 1e-9)
	assert.Zero(t, recencySignal(time.Hour, 0))
}
