package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"primehavenwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepresentativesStore struct {
	pool *pgxpool.Pool
}

func NewRepresentativesStore(pool *pgxpool.Pool) *RepresentativesStore {
	return &RepresentativesStore{pool: pool}
}

const representativeColumns = `id, name, role, phone, photo, email, display_order, created_at`

func (s *RepresentativesStore) ListRepresentatives(ctx context.Context) ([]domain.Representative, error) {
	q := "SELECT " + representativeColumns + " FROM representatives ORDER BY display_order, created_at"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list representatives: %w", err)
	}
	defer rows.Close()

	var out []domain.Representative
	for rows.Next() {
		rep, err := scanRepresentativeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan representative: %w", err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list representatives: %w", err)
	}
	return out, nil
}

func (s *RepresentativesStore) GetRepresentativeByID(ctx context.Context, id string) (domain.Representative, error) {
	q := "SELECT " + representativeColumns + " FROM representatives WHERE id = $1"

	rep, err := scanRepresentativeRow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Representative{}, domain.ErrNotFound
		}
		return domain.Representative{}, fmt.Errorf("get representative: %w", err)
	}
	return rep, nil
}

func (s *RepresentativesStore) CreateRepresentative(ctx context.Context, rep domain.Representative) (domain.Representative, error) {
	q := `
		INSERT INTO representatives (name, role, phone, photo, email, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + representativeColumns

	created, err := scanRepresentativeRow(s.pool.QueryRow(ctx, q,
		rep.Name,
		rep.Role,
		rep.Phone,
		nullIfEmpty(rep.Photo),
		nullIfEmpty(rep.Email),
		rep.DisplayOrder,
	))
	if err != nil {
		return domain.Representative{}, fmt.Errorf("create representative: %w", err)
	}
	return created, nil
}

func (s *RepresentativesStore) UpdateRepresentative(ctx context.Context, id string, upd domain.RepresentativeUpdate) (domain.Representative, error) {
	var (
		set  []string
		args = []any{id}
	)

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Role != nil {
		add("role", *upd.Role)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Photo != nil {
		add("photo", nullIfEmpty(*upd.Photo))
	}
	if upd.Email != nil {
		add("email", nullIfEmpty(*upd.Email))
	}
	if upd.DisplayOrder != nil {
		add("display_order", *upd.DisplayOrder)
	}

	if len(set) == 0 {
		return s.GetRepresentativeByID(ctx, id)
	}

	q := "UPDATE representatives SET " + strings.Join(set, ", ") + " WHERE id = $1 RETURNING " + representativeColumns

	rep, err := scanRepresentativeRow(s.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Representative{}, domain.ErrNotFound
		}
		return domain.Representative{}, fmt.Errorf("update representative: %w", err)
	}
	return rep, nil
}

func (s *RepresentativesStore) DeleteRepresentative(ctx context.Context, id string) error {
	const q = `DELETE FROM representatives WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete representative: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRepresentativeRow(row rowScanner) (domain.Representative, error) {
	var (
		rep    domain.Representative
		idUUID pgtype.UUID
		photo  pgtype.Text
		email  pgtype.Text
	)
	err := row.Scan(
		&idUUID,
		&rep.Name,
		&rep.Role,
		&rep.Phone,
		&photo,
		&email,
		&rep.DisplayOrder,
		&rep.CreatedAt,
	)
	if err != nil {
		return domain.Representative{}, err
	}

	rep.ID = uuidOrEmpty(idUUID)
	rep.Photo = textOrEmpty(photo)
	rep.Email = textOrEmpty(email)
	return rep, nil
}
