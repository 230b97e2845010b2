// Copyright (c) 2026 Litho Press. All rights reserved.

package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithopress/litho/internal/platform/database/schema"
	"github.com/lithopress/litho/internal/platform/dberr"
	"github.com/lithopress/litho/pkg/pagination"
)

// searchResultLimit caps how many hits the site search returns.
const searchResultLimit = 25

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) SearchPosts(context context.Context, query string) ([]SearchResult, error) {
	p := schema.ContentPost
	sql := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		WHERE %s IS NULL AND %s = 'published'
		  AND (%s ILIKE '%%' || $1 || '%%' OR %s ILIKE '%%' || $1 || '%%')
		ORDER BY %s DESC
		LIMIT %d
	`,
		p.ID, p.Title, p.Slug, p.Table,
		p.DeletedAt, p.Status,
		p.Title, p.Excerpt,
		p.CreatedAt, searchResultLimit)

	rows, err := repository.db.Query(context, sql, query)
	if err != nil {
		return nil, dberr.Wrap(err, "search_posts")
	}
	defer rows.Close()

	results := make([]SearchResult, 0)
	for rows.Next() {
		result := SearchResult{}
		if err := rows.Scan(&result.PostID, &result.Title, &result.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_search_result")
		}
		results = append(results, result)
	}

	return results, nil
}

func (repository *PostgresRepository) RecordSearchMiss(context context.Context, miss *SearchMiss) error {
	m := schema.AnalyticsSearchMiss
	sql := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		m.Table, m.ID, m.Query)

	if _, err := repository.db.Exec(context, sql, miss.ID, miss.Query); err != nil {
		return dberr.Wrap(err, "record_search_miss")
	}
	return nil
}

func (repository *PostgresRepository) ListSearchMisses(context context.Context, params pagination.Params) ([]*SearchMiss, int, error) {
	m := schema.AnalyticsSearchMiss

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, m.Table)
	total := 0
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_search_misses")
	}

	sql := fmt.Sprintf(`
		SELECT %s, %s, %s FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		m.ID, m.Query, m.OccurredAt, m.Table, m.OccurredAt)

	rows, err := repository.db.Query(context, sql, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_search_misses")
	}
	defer rows.Close()

	misses := make([]*SearchMiss, 0)
	for rows.Next() {
		miss := &SearchMiss{}
		if err := rows.Scan(&miss.ID, &miss.Query, &miss.OccurredAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_search_miss")
		}
		misses = append(misses, miss)
	}

	return misses, total, nil
}

func (repository *PostgresRepository) AddExperimentTotals(context context.Context, name, variant string, impressions, conversions int64) error {
	e := schema.AnalyticsExperiment
	sql := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = %s.%s + EXCLUDED.%s,
			%s = %s.%s + EXCLUDED.%s,
			%s = NOW()
	`,
		e.Table, e.Name, e.Variant, e.Impressions, e.Conversions,
		e.Name, e.Variant,
		e.Impressions, e.Table, e.Impressions, e.Impressions,
		e.Conversions, e.Table, e.Conversions, e.Conversions,
		e.UpdatedAt)

	if _, err := repository.db.Exec(context, sql, name, variant, impressions, conversions); err != nil {
		return dberr.Wrap(err, "add_experiment_totals")
	}
	return nil
}

func (repository *PostgresRepository) ListExperimentTotals(context context.Context) ([]*ExperimentTotals, error) {
	e := schema.AnalyticsExperiment
	sql := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		ORDER BY %s ASC, %s ASC
	`,
		e.Name, e.Variant, e.Impressions, e.Conversions, e.UpdatedAt,
		e.Table, e.Name, e.Variant)

	rows, err := repository.db.Query(context, sql)
	if err != nil {
		return nil, dberr.Wrap(err, "list_experiment_totals")
	}
	defer rows.Close()

	totals := make([]*ExperimentTotals, 0)
	for rows.Next() {
		row := &ExperimentTotals{}
		if err := rows.Scan(&row.Name, &row.Variant, &row.Impressions, &row.Conversions, &row.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_experiment_totals")
		}
		totals = append(totals, row)
	}

	return totals, nil
}
