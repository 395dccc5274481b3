package cli

import (
	"context"
	"time"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
)

// mockExtractor implements driving.Extractor for command tests.
type mockExtractor struct {
	scanReport *driving.ScanReport
	planReport *domain.DryRunReport
	batch      *domain.BatchResult
	err        error

	extractedPath string
}

func (m *mockExtractor) Scan(_ context.Context) (*driving.ScanReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.scanReport, nil
}

func (m *mockExtractor) Plan(_ context.Context) (*domain.DryRunReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.planReport, nil
}

func (m *mockExtractor) ExtractAll(_ context.Context) (*domain.BatchResult, error) {
	return m.batch, m.err
}

func (m *mockExtractor) Extract(_ context.Context, sourcePath string) (*domain.BatchResult, error) {
	m.extractedPath = sourcePath
	return m.batch, m.err
}

// mockHistoryService implements driving.HistoryService for command tests.
type mockHistoryService struct {
	records   []domain.PublicationRecord
	err       error
	lastLimit int
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.PublicationRecord, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// setupTestServices swaps the package-level services for mocks and
// returns a cleanup that restores the unwired state.
func setupTestServices(ext *mockExtractor, hist *mockHistoryService) func() {
	extractor = ext
	if hist != nil {
		historyService = hist
	}
	servicesWired = true

	return func() {
		extractor = nil
		historyService = nil
		servicesWired = false
		rootCmd.SetArgs(nil)

		// Flag values persist across Execute calls.
		extractDryRun = false
		scanInteractive = false
		historyLimit = 20
	}
}

var cliTestTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleScanReport() *driving.ScanReport {
	return &driving.ScanReport{
		Candidates: []domain.ScoredCandidate{
			{
				Candidate: domain.Candidate{
					Path:             "my_tool.py",
					SizeBytes:        2048,
					ModifiedAt:       cliTestTime.Add(-24 * time.Hour),
					HasDocumentation: true,
					HasTests:         true,
					Category:         domain.CategoryTool,
				},
				Score:    0.88,
				Eligible: true,
			},
			{
				Candidate: domain.Candidate{
					Path:       "old.txt",
					SizeBytes:  50,
					ModifiedAt: cliTestTime.Add(-200 * 24 * time.Hour),
					Category:   domain.CategoryOther,
				},
				Score: 0.01,
			},
		},
	}
}

func sampleBatchResult() *domain.BatchResult {
	return &domain.BatchResult{
		Summary: domain.BatchSummary{Scanned: 2, Eligible: 1, Published: 1},
		Published: []domain.ExtractionManifest{
			{
				ID:                  "id-1",
				SourcePath:          "my_tool.py",
				PublicName:          "my-tool.py",
				ExtractedAt:         cliTestTime,
				TransformationNotes: []string{"separator:underscore-to-hyphen"},
				ScoreAtExtraction:   0.88,
				Category:            domain.CategoryTool,
				Destination:         "/pub/demo",
			},
		},
	}
}
