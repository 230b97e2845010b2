// Copyright (c) 2026 Litho Press. All rights reserved.

package newsletter

import (
	"context"
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

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Subscriber, error) {
	n := schema.NewsletterSubscriber
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = LOWER(TRIM($1))`,
		n.ID, n.Email, n.UnsubscribeToken, n.SubscribedAt, n.UnsubscribedAt,
		n.Table, n.Email)

	subscriber := &Subscriber{}
	err := repository.db.QueryRow(context, query, email).Scan(
		&subscriber.ID, &subscriber.Email, &subscriber.UnsubscribeToken,
		&subscriber.SubscribedAt, &subscriber.UnsubscribedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_subscriber_by_email")
	}
	return subscriber, nil
}

func (repository *PostgresRepository) Create(context context.Context, subscriber *Subscriber) error {
	n := schema.NewsletterSubscriber
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, LOWER(TRIM($2)), $3)`,
		n.Table, n.ID, n.Email, n.UnsubscribeToken)

	if _, err := repository.db.Exec(context, query, subscriber.ID, subscriber.Email, subscriber.UnsubscribeToken); err != nil {
		return dberr.Wrap(err, "create_subscriber")
	}
	return nil
}

func (repository *PostgresRepository) Reactivate(context context.Context, id string) error {
	n := schema.NewsletterSubscriber
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL, %s = NOW() WHERE %s = $1`,
		n.Table, n.UnsubscribedAt, n.SubscribedAt, n.ID)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "reactivate_subscriber")
	}
	return nil
}

func (repository *PostgresRepository) Unsubscribe(context context.Context, token string) error {
	n := schema.NewsletterSubscriber
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		n.Table, n.UnsubscribedAt, n.UnsubscribeToken, n.UnsubscribedAt)

	result, err := repository.db.Exec(context, query, token)
	if err != nil {
		return dberr.Wrap(err, "unsubscribe")
	}
	if result.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "unsubscribe")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*Subscriber, int, error) {
	n := schema.NewsletterSubscriber

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s IS NULL`, n.Table, n.UnsubscribedAt)
	total := 0
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_subscribers")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		WHERE %s IS NULL
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		n.ID, n.Email, n.UnsubscribeToken, n.SubscribedAt, n.UnsubscribedAt,
		n.Table, n.UnsubscribedAt, n.SubscribedAt)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_subscribers")
	}
	defer rows.Close()

	subscribers := make([]*Subscriber, 0)
	for rows.Next() {
		subscriber := &Subscriber{}
		if err := rows.Scan(&subscriber.ID, &subscriber.Email, &subscriber.UnsubscribeToken,
			&subscriber.SubscribedAt, &subscriber.UnsubscribedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_subscriber")
		}
		subscribers = append(subscribers, subscriber)
	}

	return subscribers, total, nil
}
