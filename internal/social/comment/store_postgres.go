// Copyright (c) 2026 Litho Press. All rights reserved.

// PostgreSQL implementation of the comment repository.
//
// # Err Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/pkg/pagination"
)

// PostgresRepository implements the comment Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the comment Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const commentColumns = `
	c.id, c.postid, c.userid, a.displayname, c.body,
	c.spamscore, c.spamflags,
	c.likecount, c.helpfulcount, c.funnycount,
	c.createdat, c.updatedat`

// scanComment hydrates a single comment row (joined with the author account).
func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	err := row.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.AuthorName, &c.Body,
		&c.SpamScore, &c.SpamFlags,
		&c.Reactions.Like, &c.Reactions.Helpful, &c.Reactions.Funny,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
Create persists a brand-new comment record into the social.comment table.

The spam score and flag set computed at submission time are stored verbatim
and never touched again.
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (
			id, postid, userid, body, spamscore, spamflags, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.PostID,
		comment.UserID,
		comment.Body,
		comment.SpamScore,
		comment.SpamFlags,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a single visible comment by its ID.
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM social.comment c
		JOIN users.account a ON a.id = c.userid
		WHERE c.id = $1 AND c.isdeleted = false`

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return comment, nil
}

/*
ListByPost returns every visible comment on a post with aggregate tallies.

Ordering is intentionally unspecified here; the service layer ranks the set
per request (sort mode + viewer overlay are request-scoped concerns).
*/
func (repository *PostgresRepository) ListByPost(context context.Context, postID string) ([]*Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM social.comment c
		JOIN users.account a ON a.id = c.userid
		WHERE c.postid = $1 AND c.isdeleted = false`

	rows, err := repository.pool.Query(context, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_list_by_post_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

/*
ListFlagged returns stored comments that triggered at least one spam flag,
newest first, for the staff audit view.
*/
func (repository *PostgresRepository) ListFlagged(context context.Context, params pagination.Params) ([]*Comment, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM social.comment
		WHERE cardinality(spamflags) > 0 AND isdeleted = false`

	total := 0
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_flagged_failed: %w", err)
	}

	query := `
		SELECT ` + commentColumns + `
		FROM social.comment c
		JOIN users.account a ON a.id = c.userid
		WHERE cardinality(c.spamflags) > 0 AND c.isdeleted = false
		ORDER BY c.createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_flagged_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

/*
SoftDelete hides a comment without removing the row. Spam audit data stays
queryable.
*/
func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	const query = `
		UPDATE social.comment
		SET isdeleted = true, updatedat = $2
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_soft_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// kindColumn maps a reaction kind to its tally column on social.comment.
func kindColumn(kind ReactionKind) (string, error) {
	switch kind {
	case ReactionLike:
		return "likecount", nil
	case ReactionHelpful:
		return "helpfulcount", nil
	case ReactionFunny:
		return "funnycount", nil
	}
	return "", fmt.Errorf("postgres_comment_repo_unknown_reaction_kind: %q", kind)
}

/*
ToggleReaction applies a viewer's reaction as one transactional
read-modify-write.

The comment row is locked FOR UPDATE for the duration of the transaction so
concurrent reactions from different users on the same comment cannot clobber
each other's tally contributions.
*/
func (repository *PostgresRepository) ToggleReaction(context context.Context, commentID, userID string, kind ReactionKind) (*Comment, error) {
	newColumn, err := kindColumn(kind)
	if err != nil {
		return nil, err
	}

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_toggle_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// 1. Lock the comment row. This serializes all tally mutations for
	// this comment across concurrent requests.
	var lockedID string
	err = tx.QueryRow(context,
		`SELECT id FROM social.comment WHERE id = $1 AND isdeleted = false FOR UPDATE`,
		commentID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_toggle_lock_failed: %w", err)
	}

	// 2. Read the viewer's current ledger entry, if any.
	var existing string
	err = tx.QueryRow(context,
		`SELECT kind FROM social.reaction WHERE commentid = $1 AND userid = $2`,
		commentID, userID,
	).Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres_comment_repo_toggle_read_failed: %w", err)
	}

	viewerReaction := ""

	switch {
	case existing == string(kind):
		// Same kind twice: clear the reaction.
		_, err = tx.Exec(context,
			`DELETE FROM social.reaction WHERE commentid = $1 AND userid = $2`,
			commentID, userID)
		if err == nil {
			_, err = tx.Exec(context,
				fmt.Sprintf(`UPDATE social.comment SET %s = %s - 1, updatedat = now() WHERE id = $1`, newColumn, newColumn),
				commentID)
		}

	case existing != "":
		// Switch kinds: decrement the old tally, increment the new one.
		oldColumn, colErr := kindColumn(ReactionKind(existing))
		if colErr != nil {
			return nil, colErr
		}
		_, err = tx.Exec(context,
			`UPDATE social.reaction SET kind = $3, createdat = now() WHERE commentid = $1 AND userid = $2`,
			commentID, userID, string(kind))
		if err == nil {
			_, err = tx.Exec(context,
				fmt.Sprintf(`UPDATE social.comment SET %s = %s - 1, %s = %s + 1, updatedat = now() WHERE id = $1`,
					oldColumn, oldColumn, newColumn, newColumn),
				commentID)
		}
		viewerReaction = string(kind)

	default:
		// Fresh reaction.
		_, err = tx.Exec(context,
			`INSERT INTO social.reaction (commentid, userid, kind, createdat) VALUES ($1, $2, $3, now())`,
			commentID, userID, string(kind))
		if err == nil {
			_, err = tx.Exec(context,
				fmt.Sprintf(`UPDATE social.comment SET %s = %s + 1, updatedat = now() WHERE id = $1`, newColumn, newColumn),
				commentID)
		}
		viewerReaction = string(kind)
	}

	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_toggle_apply_failed: %w", err)
	}

	// 3. Re-read the refreshed tallies inside the transaction.
	query := `
		SELECT ` + commentColumns + `
		FROM social.comment c
		JOIN users.account a ON a.id = c.userid
		WHERE c.id = $1`

	comment, err := scanComment(tx.QueryRow(context, query, commentID))
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_toggle_reread_failed: %w", err)
	}
	comment.ViewerReaction = viewerReaction

	if err := tx.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_toggle_commit_failed: %w", err)
	}

	return comment, nil
}

/*
ViewerLedger returns the viewer's active reactions across a post's comments,
keyed by comment ID.
*/
func (repository *PostgresRepository) ViewerLedger(context context.Context, postID, userID string) (map[string]ReactionKind, error) {
	const query = `
		SELECT r.commentid, r.kind
		FROM social.reaction r
		JOIN social.comment c ON c.id = r.commentid
		WHERE c.postid = $1 AND r.userid = $2`

	rows, err := repository.pool.Query(context, query, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_comment_repo_viewer_ledger_failed: %w", err)
	}
	defer rows.Close()

	ledger := make(map[string]ReactionKind)
	for rows.Next() {
		var commentID, kind string
		if err := rows.Scan(&commentID, &kind); err != nil {
			return nil, fmt.Errorf("postgres_comment_repo_ledger_scan_failed: %w", err)
		}
		ledger[commentID] = ReactionKind(kind)
	}

	return ledger, rows.Err()
}
