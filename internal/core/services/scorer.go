package services

import (
	"sort"
	"time"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
)

// Scorer computes value scores for candidates. Scoring is pure: the
// reference time is passed in explicitly so identical input always
// yields an identical score.
type Scorer struct {
	cfg domain.ExtractionConfig
}

// sizePivot is the byte count at which the size signal reaches 0.5.
// The signal saturates beyond it so one huge artifact cannot dominate.
const sizePivot = 8 * 1024

// NewScorer creates a scorer from the given configuration.
func NewScorer(cfg domain.ExtractionConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the weighted value score for a candidate in [0, 1].
// The score is the weight-normalised sum of four signals: saturating
// size, decaying recency, a documentation bonus and a test bonus.
func (s *Scorer) Score(c domain.Candidate, now time.Time) float64 {
	total := s.cfg.WeightSize + s.cfg.WeightRecency + s.cfg.WeightDocs + s.cfg.WeightTests
	if total == 0 {
		return 0
	}

	sum := s.cfg.WeightSize * sizeSignal(c.SizeBytes)
	sum += s.cfg.WeightRecency * recencySignal(now.Sub(c.ModifiedAt), s.cfg.StalenessWindow)
	if c.HasDocumentation {
		sum += s.cfg.WeightDocs
	}
	if c.HasTests {
		sum += s.cfg.WeightTests
	}

	return sum / total
}

// ScoreAll scores every candidate and returns them ordered by
// descending score, ties broken by path.
func (s *Scorer) ScoreAll(candidates []domain.Candidate, now time.Time) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		score := s.Score(c, now)
		scored = append(scored, domain.ScoredCandidate{
			Candidate: c,
			Score:     score,
			Eligible:  score >= s.cfg.Threshold,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Path < scored[j].Path
	})

	return scored
}

// sizeSignal maps a byte count to [0, 1), increasing monotonically and
// saturating around the pivot.
func sizeSignal(sizeBytes int64) float64 {
	if sizeBytes <= 0 {
		return 0
	}
	return float64(sizeBytes) / float64(sizeBytes+sizePivot)
}

// recencySignal maps an age to [0, 1]: 1 for just-modified content,
// decaying linearly to a floor of 0 at the staleness window.
func recencySignal(age, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	if age <= 0 {
		return 1
	}
	if age >= window {
		return 0
	}
	return 1 - float64(age)/float64(window)
}
