package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithopress/litho/internal/platform/database/schema"
	"github.com/lithopress/litho/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	c := schema.ContentCategory
	pc := schema.ContentPostCategory
	p := schema.ContentPost
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s,
		       COUNT(p.%s) AS postcount
		FROM %s c
		LEFT JOIN %s pc ON pc.%s = c.%s
		LEFT JOIN %s p ON p.%s = pc.%s AND p.%s IS NULL AND p.%s = 'published'
		GROUP BY c.%s
		ORDER BY c.%s ASC
	`,
		c.ID, c.Name, c.Slug, c.CreatedAt,
		p.ID,
		c.Table,
		pc.Table, pc.CategoryID, c.ID,
		p.Table, p.ID, pc.PostID, p.DeletedAt, p.Status,
		c.ID,
		c.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, &category.PostCount); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Category, error) {
	c := schema.ContentCategory
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		c.ID, c.Name, c.Slug, c.CreatedAt, c.Table, c.ID)

	return repository.scanOne(context, query, id, "get_category_by_id")
}

func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Category, error) {
	c := schema.ContentCategory
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		c.ID, c.Name, c.Slug, c.CreatedAt, c.Table, c.Slug)

	return repository.scanOne(context, query, slug, "get_category_by_slug")
}

func (repository *PostgresRepository) scanOne(context context.Context, query, arg, operation string) (*Category, error) {
	category := &Category{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, operation)
	}
	return category, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		c.Table, c.ID, c.Name, c.Slug)

	if _, err := repository.db.Exec(context, query, category.ID, category.Name, category.Slug); err != nil {
		return dberr.Wrap(err, "create_category")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		c.Table, c.Name, c.Slug, c.ID)

	result, err := repository.db.Exec(context, query, category.ID, category.Name, category.Slug)
	if err != nil {
		return dberr.Wrap(err, "update_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_category")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_category")
	}
	return nil
}
