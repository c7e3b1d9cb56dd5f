package postgres

import (
	"context"
	"database/sql"
	"errors"

	"appraisal-cloud/internal/valuation/application"
)

const defaultListLimit = 100

// HistoryRepository persists the append-only appraisal history.
// No update or delete path exists on purpose.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository constructs a history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts one history record and returns its generated id.
func (r *HistoryRepository) Append(ctx context.Context, entry application.HistoryEntry) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("history repo: nil db")
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO appraisal_history (
	created_at, article_id, norm, market_value, gross_area, usable_area, method, currency
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8
) RETURNING id`,
		entry.CreatedAt, entry.ArticleID, entry.Norm, entry.MarketValue,
		entry.GrossArea, entry.UsableArea, entry.Method, entry.Currency,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns history records newest first. Ordering follows the
// auto-increment key so equal timestamps still list in append order.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]application.HistoryEntry, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("history repo: nil db")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT
	id,
	created_at,
	article_id,
	norm,
	market_value,
	gross_area,
	usable_area,
	method,
	currency
FROM appraisal_history
ORDER BY id DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []application.HistoryEntry
	for rows.Next() {
		var entry application.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&entry.ArticleID,
			&entry.Norm,
			&entry.MarketValue,
			&entry.GrossArea,
			&entry.UsableArea,
			&entry.Method,
			&entry.Currency,
		); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
