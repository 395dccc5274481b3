package mcp

import (
	"context"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driving"
)

// mockExtractor is a mock implementation of driving.Extractor.
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

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.PublicationRecord
	err     error
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.PublicationRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}
