package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aget-labs/bridge-cli/internal/core/domain"
	"github.com/aget-labs/bridge-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record stores one publication.
func (s *historyStore) Record(ctx context.Context, rec *domain.PublicationRecord) error {
	if rec == nil {
		return domain.ErrNotFound
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO publications (id, source_path, public_name, category, score, destination, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SourcePath, rec.PublicName, string(rec.Category), rec.Score,
		rec.Destination, rec.ExtractedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("recording publication: %w", err)
	}
	return nil
}

// List returns recent publications, most recent first.
// A non-positive limit returns all records.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.PublicationRecord, error) {
	query := `
		SELECT id, source_path, public_name, category, score, destination, extracted_at
		FROM publications
		ORDER BY extracted_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	var records []domain.PublicationRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.PublicationRecord
		var category, extractedAt string
		if err := rows.Scan(&rec.ID, &rec.SourcePath, &rec.PublicName, &category,
			&rec.Score, &rec.Destination, &extractedAt); err != nil {
			return nil, fmt.Errorf("scanning publication: %w", err)
		}
		rec.Category = domain.Category(category)
		if t, err := time.Parse(time.RFC3339, extractedAt); err == nil {
			rec.ExtractedAt = t
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publications: %w", err)
	}

	return records, nil
}
