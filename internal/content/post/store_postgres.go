// Copyright (c) 2026 Litho Press. All rights reserved.

package post

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithopress/litho/internal/platform/database/schema"
	"github.com/lithopress/litho/internal/platform/dberr"
	"github.com/lithopress/litho/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func postColumns() string {
	p := schema.ContentPost
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		p.ID, p.Title, p.Slug, p.Excerpt, p.Blocks, p.Status, p.AuthorID, p.AuthorName,
		p.ReleaseDate, p.ReleaseType, p.PublishedAt, p.CreatedAt, p.UpdatedAt)
}

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{Categories: make([]CategoryRef, 0)}
	var blocks []byte

	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &blocks, &p.Status, &p.AuthorID, &p.AuthorName,
		&p.ReleaseDate, &p.ReleaseType, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &p.Blocks); err != nil {
			return nil, err
		}
	}
	if p.Blocks == nil {
		p.Blocks = make([]Block, 0)
	}
	return p, nil
}

func (repository *PostgresRepository) Create(context context.Context, post *Post, categoryIDs []string) error {
	blocks, err := json.Marshal(post.Blocks)
	if err != nil {
		return dberr.Wrap(err, "encode_post_blocks")
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_post")
	}
	defer tx.Rollback(context)

	p := schema.ContentPost
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		p.Table, p.ID, p.Title, p.Slug, p.Excerpt, p.Blocks, p.Status, p.AuthorID, p.AuthorName,
		p.ReleaseDate, p.ReleaseType, p.PublishedAt)

	_, err = tx.Exec(context, query,
		post.ID, post.Title, post.Slug, post.Excerpt, blocks, post.Status, post.AuthorID, post.AuthorName,
		post.ReleaseDate, post.ReleaseType, post.PublishedAt)
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}

	if err := replaceCategoryLinks(context, tx, post.ID, categoryIDs, false); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_post")
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, post *Post, categoryIDs []string) error {
	blocks, err := json.Marshal(post.Blocks)
	if err != nil {
		return dberr.Wrap(err, "encode_post_blocks")
	}

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_post")
	}
	defer tx.Rollback(context)

	p := schema.ContentPost
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
		    %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		p.Table,
		p.Title, p.Slug, p.Excerpt, p.Blocks, p.Status, p.ReleaseDate,
		p.ReleaseType, p.PublishedAt, p.UpdatedAt,
		p.ID, p.DeletedAt)

	result, err := tx.Exec(context, query,
		post.ID, post.Title, post.Slug, post.Excerpt, blocks, post.Status, post.ReleaseDate,
		post.ReleaseType, post.PublishedAt)
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update_post")
	}

	if err := replaceCategoryLinks(context, tx, post.ID, categoryIDs, true); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_post")
	}
	return nil
}

func replaceCategoryLinks(context context.Context, tx pgx.Tx, postID string, categoryIDs []string, clear bool) error {
	pc := schema.ContentPostCategory

	if clear {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, pc.Table, pc.PostID)
		if _, err := tx.Exec(context, query, postID); err != nil {
			return dberr.Wrap(err, "clear_post_categories")
		}
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, pc.Table, pc.PostID, pc.CategoryID)
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(context, query, postID, categoryID); err != nil {
			return dberr.Wrap(err, "link_post_category")
		}
	}
	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	p := schema.ContentPost
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		postColumns(), p.Table, p.ID, p.DeletedAt)

	return repository.findOne(context, query, id, "get_post_by_id")
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	p := schema.ContentPost
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		postColumns(), p.Table, p.Slug, p.DeletedAt)

	return repository.findOne(context, query, slug, "get_post_by_slug")
}

func (repository *PostgresRepository) findOne(context context.Context, query, arg, operation string) (*Post, error) {
	post, err := scanPost(repository.db.QueryRow(context, query, arg))
	if err != nil {
		return nil, dberr.Wrap(err, operation)
	}

	if err := repository.hydrateCategories(context, []*Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Post, int, error) {
	p := schema.ContentPost
	pc := schema.ContentPostCategory
	c := schema.ContentCategory

	where := fmt.Sprintf("p.%s IS NULL", p.DeletedAt)
	args := make([]any, 0, 4)

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND p.%s = $%d", p.Status, len(args))
	}
	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s pc JOIN %s c ON pc.%s = c.%s
			WHERE pc.%s = p.%s AND c.%s = $%d
		)`,
			pc.Table, c.Table, pc.CategoryID, c.ID,
			pc.PostID, p.ID, c.Slug, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE %s`, p.Table, where)
	total := 0
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM %s p
		WHERE %s
		ORDER BY p.%s DESC
		LIMIT $%d OFFSET $%d
	`,
		prefixedPostColumns("p"), p.Table, where, p.CreatedAt, len(args)-1, len(args))

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}
	rows.Close()

	if err := repository.hydrateCategories(context, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func prefixedPostColumns(alias string) string {
	p := schema.ContentPost
	columns := []string{p.ID, p.Title, p.Slug, p.Excerpt, p.Blocks, p.Status, p.AuthorID, p.AuthorName,
		p.ReleaseDate, p.ReleaseType, p.PublishedAt, p.CreatedAt, p.UpdatedAt}

	out := ""
	for i, column := range columns {
		if i > 0 {
			out += ", "
		}
		out += alias + "." + column
	}
	return out
}

func (repository *PostgresRepository) hydrateCategories(context context.Context, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}

	postMap := make(map[string]*Post, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		postMap[post.ID] = post
		ids = append(ids, post.ID)
	}

	pc := schema.ContentPostCategory
	c := schema.ContentCategory
	query := fmt.Sprintf(`
		SELECT pc.%s, c.%s, c.%s, c.%s
		FROM %s pc
		JOIN %s c ON pc.%s = c.%s
		WHERE pc.%s = ANY($1)
		ORDER BY c.%s ASC
	`,
		pc.PostID, c.ID, c.Name, c.Slug,
		pc.Table, c.Table, pc.CategoryID, c.ID,
		pc.PostID, c.Name)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_post_categories")
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		ref := CategoryRef{}
		if err := rows.Scan(&postID, &ref.ID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "scan_post_category")
		}
		if post, ok := postMap[postID]; ok {
			post.Categories = append(post.Categories, ref)
		}
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	p := schema.ContentPost
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		p.Table, p.DeletedAt, p.ID, p.DeletedAt)

	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_post")
	}
	return nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	p := schema.ContentPost
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		p.Table, p.Slug, p.DeletedAt)

	exists := false
	if err := repository.db.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_post_slug")
	}
	return exists, nil
}

func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	p := schema.ContentPost
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		p.Table, p.ID, p.DeletedAt)

	exists := false
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_post_exists")
	}
	return exists, nil
}
