package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewsletterStore struct {
	pool *pgxpool.Pool
}

func NewNewsletterStore(pool *pgxpool.Pool) *NewsletterStore {
	return &NewsletterStore{pool: pool}
}

const subscriptionColumns = `id, email, subscribed, created_at, unsubscribed_at`

func (s *NewsletterStore) GetSubscriptionByEmail(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	q := "SELECT " + subscriptionColumns + " FROM newsletter_subscriptions WHERE email = $1"

	sub, err := scanSubscriptionRow(s.pool.QueryRow(ctx, q, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewsletterSubscription{}, domain.ErrNotFound
		}
		return domain.NewsletterSubscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

func (s *NewsletterStore) CreateSubscription(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	q := `
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		RETURNING ` + subscriptionColumns

	sub, err := scanSubscriptionRow(s.pool.QueryRow(ctx, q, email))
	if err != nil {
		return domain.NewsletterSubscription{}, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

// SetSubscribed flips the subscription flag for an existing record.
// Resubscribing clears unsubscribed_at; unsubscribing stamps it.
func (s *NewsletterStore) SetSubscribed(ctx context.Context, email string, subscribed bool, when time.Time) (domain.NewsletterSubscription, error) {
	q := `
		UPDATE newsletter_subscriptions
		SET subscribed = $2,
		    unsubscribed_at = CASE WHEN $2 THEN NULL ELSE $3 END
		WHERE email = $1
		RETURNING ` + subscriptionColumns

	sub, err := scanSubscriptionRow(s.pool.QueryRow(ctx, q, email, subscribed, when))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewsletterSubscription{}, domain.ErrNotFound
		}
		return domain.NewsletterSubscription{}, fmt.Errorf("set subscribed: %w", err)
	}
	return sub, nil
}

// ListSubscriptions returns all rows, optionally filtered by the
// subscribed flag, newest first.
func (s *NewsletterStore) ListSubscriptions(ctx context.Context, subscribed *bool) ([]domain.NewsletterSubscription, error) {
	q := "SELECT " + subscriptionColumns + " FROM newsletter_subscriptions"
	var args []any
	if subscribed != nil {
		q += " WHERE subscribed = $1"
		args = append(args, *subscribed)
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var out []domain.NewsletterSubscription
	for rows.Next() {
		sub, err := scanSubscriptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return out, nil
}

func (s *NewsletterStore) GetNewsletterStats(ctx context.Context) (domain.NewsletterStats, error) {
	const q = `
		SELECT
			count(*),
			count(*) FILTER (WHERE subscribed),
			count(*) FILTER (WHERE NOT subscribed)
		FROM newsletter_subscriptions
	`

	var st domain.NewsletterStats
	if err := s.pool.QueryRow(ctx, q).Scan(&st.Total, &st.Subscribed, &st.Unsubscribed); err != nil {
		return domain.NewsletterStats{}, fmt.Errorf("newsletter stats: %w", err)
	}
	return st, nil
}

func (s *NewsletterStore) DeleteSubscription(ctx context.Context, id string) error {
	const q = `DELETE FROM newsletter_subscriptions WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSubscriptionRow(row rowScanner) (domain.NewsletterSubscription, error) {
	var (
		sub     domain.NewsletterSubscription
		idUUID  pgtype.UUID
		unsubTS pgtype.Timestamptz
	)
	err := row.Scan(
		&idUUID,
		&sub.Email,
		&sub.Subscribed,
		&sub.CreatedAt,
		&unsubTS,
	)
	if err != nil {
		return domain.NewsletterSubscription{}, err
	}

	sub.ID = uuidOrEmpty(idUUID)
	sub.UnsubscribedAt = timestamptzPtr(unsubTS)
	return sub, nil
}
