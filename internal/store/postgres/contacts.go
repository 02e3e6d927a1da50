package postgres

import (
	"context"
	"errors"
	"fmt"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactsStore struct {
	pool *pgxpool.Pool
}

func NewContactsStore(pool *pgxpool.Pool) *ContactsStore {
	return &ContactsStore{pool: pool}
}

const contactColumns = `id, name, email, phone, message, read, replied, created_at`

func (s *ContactsStore) CreateSubmission(ctx context.Context, name, email, phone, message string) (domain.ContactSubmission, error) {
	q := `
		INSERT INTO contact_submissions (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contactColumns

	sub, err := scanContactRow(s.pool.QueryRow(ctx, q, name, email, phone, message))
	if err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("create contact submission: %w", err)
	}
	return sub, nil
}

func (s *ContactsStore) ListSubmissions(ctx context.Context, unreadOnly bool) ([]domain.ContactSubmission, error) {
	q := "SELECT " + contactColumns + " FROM contact_submissions"
	if unreadOnly {
		q += " WHERE NOT read"
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.ContactSubmission
	for rows.Next() {
		sub, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	return out, nil
}

func (s *ContactsStore) MarkRead(ctx context.Context, id string) error {
	const q = `UPDATE contact_submissions SET read = true WHERE id = $1`
	return s.execSubmission(ctx, q, id, "mark contact read")
}

// MarkReplied also marks the submission read: a replied-to message has
// necessarily been read.
func (s *ContactsStore) MarkReplied(ctx context.Context, id string) error {
	const q = `UPDATE contact_submissions SET replied = true, read = true WHERE id = $1`
	return s.execSubmission(ctx, q, id, "mark contact replied")
}

func (s *ContactsStore) DeleteSubmission(ctx context.Context, id string) error {
	const q = `DELETE FROM contact_submissions WHERE id = $1`
	return s.execSubmission(ctx, q, id, "delete contact submission")
}

func (s *ContactsStore) execSubmission(ctx context.Context, q, id, op string) error {
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanContactRow(row rowScanner) (domain.ContactSubmission, error) {
	var (
		sub    domain.ContactSubmission
		idUUID pgtype.UUID
	)
	err := row.Scan(
		&idUUID,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.Message,
		&sub.Read,
		&sub.Replied,
		&sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ContactSubmission{}, domain.ErrNotFound
		}
		return domain.ContactSubmission{}, err
	}

	sub.ID = uuidOrEmpty(idUUID)
	return sub, nil
}
