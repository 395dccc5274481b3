package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
	"github.com/aget-labs/bridge-cli/internal/logger"
)

// Ensure ExtractionOrchestrator implements the interface.
var _ driving.Extractor = (*ExtractionOrchestrator)(nil)

// ExtractionOrchestrator coordinates the bridge pipeline:
// scan the workspace, score candidates, publish eligible ones.
// Side effects are confined to apply mode; Plan never mutates anything.
type ExtractionOrchestrator struct {
	cfg       domain.ExtractionConfig
	scanner   driven.WorkspaceScanner
	dest      driven.Destination
	evolution driven.EvolutionLog
	history   driven.HistoryStore

	scorer *Scorer
	namer  *Namer

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewExtractionOrchestrator creates the orchestrator. The history store
// is optional; if nil, publications are not recorded in the durable
// history.
func NewExtractionOrchestrator(
	cfg domain.ExtractionConfig,
	scanner driven.WorkspaceScanner,
	dest driven.Destination,
	evolution driven.EvolutionLog,
	history driven.HistoryStore,
) *ExtractionOrchestrator {
	cfg = cfg.WithDerivedDefaults()
	return &ExtractionOrchestrator{
		cfg:       cfg,
		scanner:   scanner,
		dest:      dest,
		evolution: evolution,
		history:   history,
		scorer:    NewScorer(cfg),
		namer:     NewNamer(cfg.Project, cfg.GenericNames),
		now:       time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (o *ExtractionOrchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Scan discovers and scores candidates without touching the destination.
func (o *ExtractionOrchestrator) Scan(ctx context.Context) (*driving.ScanReport, error) {
	result, err := o.scanner.Scan(ctx, o.cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	logger.Debug("Scanned %d candidates (%d paths skipped)", len(result.Candidates), len(result.SkippedPaths))

	return &driving.ScanReport{
		Candidates:   o.scorer.ScoreAll(result.Candidates, o.now()),
		SkippedPaths: result.SkippedPaths,
	}, nil
}

// Plan performs a dry run: name derivation and collision detection for
// every eligible candidate, with no filesystem mutation. Running Plan
// twice over an unchanged workspace produces identical reports.
func (o *ExtractionOrchestrator) Plan(ctx context.Context) (*domain.DryRunReport, error) {
	report, err := o.Scan(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := o.dest.ExistingNames(ctx)
	if err != nil {
		return nil, err
	}

	out := &domain.DryRunReport{
		Scanned:  len(report.Candidates),
		Warnings: report.SkippedPaths,
	}

	// Names proposed earlier in the batch occupy their slot for later
	// candidates, mirroring apply-mode ordering.
	proposed := make(map[string]string)

	for _, c := range report.Candidates {
		if !c.Eligible {
			continue
		}
		name, _ := o.namer.PublicName(c.Path)

		planned := domain.PlannedExtraction{
			SourcePath:         c.Path,
			ProposedPublicName: name,
			Score:              c.Score,
		}
		if owner, ok := existing[name]; ok {
			planned.WouldCollideWith = owner
		} else if owner, ok := proposed[name]; ok {
			planned.WouldCollideWith = owner
		} else {
			proposed[name] = c.Path
		}

		out.Planned = append(out.Planned, planned)
	}

	return out, nil
}

// ExtractAll publishes every eligible candidate. Per-candidate failures
// are reported in the result and never abort the batch; earlier
// publications remain in place when a later candidate fails.
func (o *ExtractionOrchestrator) ExtractAll(ctx context.Context) (*domain.BatchResult, error) {
	report, err := o.Scan(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []domain.ScoredCandidate
	for _, c := range report.Candidates {
		if c.Eligible {
			eligible = append(eligible, c)
		}
	}

	result, err := o.publish(ctx, report, eligible)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return result, domain.ErrNoEligibleCandidates
	}
	return result, nil
}

// Extract publishes the single candidate at the given workspace-relative
// path.
func (o *ExtractionOrchestrator) Extract(ctx context.Context, sourcePath string) (*domain.BatchResult, error) {
	report, err := o.Scan(ctx)
	if err != nil {
		return nil, err
	}

	want := filepath.ToSlash(sourcePath)
	for _, c := range report.Candidates {
		if c.Path != want {
			continue
		}
		if !c.Eligible {
			return nil, fmt.Errorf("%w: %s scored %.2f, threshold is %.2f",
				domain.ErrNoEligibleCandidates, c.Path, c.Score, o.cfg.Threshold)
		}
		return o.publish(ctx, report, []domain.ScoredCandidate{c})
	}

	return nil, fmt.Errorf("%w: no candidate at %s", domain.ErrNotFound, want)
}

// publish runs the apply-mode side of the pipeline for the given
// eligible candidates. The destination is locked for the whole
// check-write-log sequence and unlocked on every exit path.
func (o *ExtractionOrchestrator) publish(
	ctx context.Context,
	report *driving.ScanReport,
	eligible []domain.ScoredCandidate,
) (*domain.BatchResult, error) {
	result := &domain.BatchResult{
		Summary: domain.BatchSummary{
			Scanned:  len(report.Candidates),
			Eligible: len(eligible),
		},
		Warnings: report.SkippedPaths,
	}
	if len(eligible) == 0 {
		return result, nil
	}

	if err := o.dest.Prepare(ctx); err != nil {
		return nil, fmt.Errorf("prepare destination: %w", err)
	}

	unlock, err := o.dest.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := o.dest.ExistingNames(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range eligible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, notes := o.namer.PublicName(c.Path)
		if owner, ok := existing[name]; ok {
			result.Summary.Skipped++
			result.Failures = append(result.Failures, domain.PublishFailure{
				SourcePath: c.Path,
				PublicName: name,
				Err:        &domain.CollisionError{PublicName: name, Existing: owner, Incoming: c.Path},
			})
			logger.Warn("Skipping %s: public name %q already taken by %s", c.Path, name, owner)
			continue
		}

		manifest := &domain.ExtractionManifest{
			ID:                  uuid.New().String(),
			SourcePath:          c.Path,
			PublicName:          name,
			ExtractedAt:         o.now().UTC(),
			TransformationNotes: notes,
			ScoreAtExtraction:   c.Score,
			Category:            c.Category,
			Destination:         o.cfg.DestinationRoot,
		}

		if err := o.publishOne(ctx, c, manifest); err != nil {
			result.Summary.Failed++
			result.Failures = append(result.Failures, domain.PublishFailure{
				SourcePath: c.Path,
				PublicName: name,
				Err:        err,
			})
			logger.Warn("Failed to publish %s: %v", c.Path, err)
			continue
		}

		existing[name] = c.Path
		result.Summary.Published++
		result.Published = append(result.Published, *manifest)
		logger.Info("Published %s as %s", c.Path, name)
	}

	return result, nil
}

// publishOne handles one candidate: artifact copy, manifest, evolution
// log entry, history record. If the log append fails after the artifact
// was committed, the artifact and manifest are removed so the
// destination never holds a publication the log does not know about.
func (o *ExtractionOrchestrator) publishOne(
	ctx context.Context,
	c domain.ScoredCandidate,
	manifest *domain.ExtractionManifest,
) error {
	sourceAbs := filepath.Join(o.cfg.WorkspaceRoot, filepath.FromSlash(c.Path))
	writeDescription := !c.HasDocumentation && c.Category != domain.CategoryDocumentation

	if err := o.dest.Publish(ctx, sourceAbs, manifest, writeDescription); err != nil {
		return err
	}

	entry := domain.EvolutionLogEntry{
		SourcePath: c.Path,
		OutputName: manifest.PublicName,
		Timestamp:  manifest.ExtractedAt,
		Notes:      evolutionNotes(manifest.TransformationNotes),
	}
	if err := o.evolution.Append(ctx, entry); err != nil {
		if rmErr := o.dest.Remove(ctx, manifest.PublicName); rmErr != nil {
			logger.Warn("Rollback of %s failed: %v", manifest.PublicName, rmErr)
		}
		return fmt.Errorf("%w: append evolution log: %v", domain.ErrWriteFailure, err)
	}

	if o.history != nil {
		rec := &domain.PublicationRecord{
			ID:          manifest.ID,
			SourcePath:  manifest.SourcePath,
			PublicName:  manifest.PublicName,
			Category:    manifest.Category,
			Score:       manifest.ScoreAtExtraction,
			Destination: manifest.Destination,
			ExtractedAt: manifest.ExtractedAt,
		}
		// History is an audit convenience, not part of the publication
		// transaction.
		if err := o.history.Record(ctx, rec); err != nil {
			logger.Warn("Failed to record history for %s: %v", manifest.PublicName, err)
		}
	}

	return nil
}

func evolutionNotes(transformations []string) string {
	if len(transformations) == 0 {
		return "published unchanged"
	}
	return strings.Join(transformations, ", ")
}
