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

type PropertiesStore struct {
	pool *pgxpool.Pool
}

func NewPropertiesStore(pool *pgxpool.Pool) *PropertiesStore {
	return &PropertiesStore{pool: pool}
}

const propertyColumns = `
	id, title, price, location, address, size, bedrooms,
	property_type, category, building_type, images, features,
	description, featured, created_at, updated_at
`

func (s *PropertiesStore) ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var (
		where []string
		args  []any
	)
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, "featured = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.PropertyType != "" {
		args = append(args, filter.PropertyType)
		where = append(where, "property_type = $"+strconv.Itoa(len(args)))
	}

	q := "SELECT " + propertyColumns + " FROM properties"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanPropertyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return out, nil
}

func (s *PropertiesStore) GetPropertyByID(ctx context.Context, id string) (domain.Property, error) {
	q := "SELECT " + propertyColumns + " FROM properties WHERE id = $1"

	p, err := scanPropertyRow(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, domain.ErrNotFound
		}
		return domain.Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (s *PropertiesStore) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	q := `
		INSERT INTO properties (
			title, price, location, address, size, bedrooms,
			property_type, category, building_type, images, features,
			description, featured
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + propertyColumns

	created, err := scanPropertyRow(s.pool.QueryRow(ctx, q,
		p.Title,
		p.Price,
		p.Location,
		p.Address,
		p.Size,
		p.Bedrooms,
		p.PropertyType,
		p.Category,
		p.BuildingType,
		p.Images,
		p.Features,
		p.Description,
		p.Featured,
	))
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	return created, nil
}

// UpdateProperty applies a partial patch. Patching a missing id is an
// explicit ErrNotFound, never a silent no-op.
func (s *PropertiesStore) UpdateProperty(ctx context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.Size != nil {
		add("size", *upd.Size)
	}
	if upd.Bedrooms != nil {
		add("bedrooms", *upd.Bedrooms)
	}
	if upd.PropertyType != nil {
		add("property_type", *upd.PropertyType)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.BuildingType != nil {
		add("building_type", *upd.BuildingType)
	}
	if upd.Images != nil {
		add("images", *upd.Images)
	}
	if upd.Features != nil {
		add("features", *upd.Features)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Featured != nil {
		add("featured", *upd.Featured)
	}

	q := "UPDATE properties SET " + strings.Join(set, ", ") + " WHERE id = $1 RETURNING " + propertyColumns

	p, err := scanPropertyRow(s.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, domain.ErrNotFound
		}
		return domain.Property{}, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

func (s *PropertiesStore) DeleteProperty(ctx context.Context, id string) error {
	const q = `DELETE FROM properties WHERE id = $1`

	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PropertiesStore) GetPropertyStats(ctx context.Context) (domain.PropertyStats, error) {
	const q = `
		SELECT
			count(*),
			count(*) FILTER (WHERE category = 'For Sale'),
			count(*) FILTER (WHERE category = 'For Rent'),
			count(*) FILTER (WHERE property_type = 'Land'),
			count(*) FILTER (WHERE property_type = 'Carcass'),
			count(*) FILTER (WHERE property_type = 'Pre-Finish'),
			count(*) FILTER (WHERE property_type = 'Finished'),
			count(*) FILTER (WHERE featured)
		FROM properties
	`

	var st domain.PropertyStats
	err := s.pool.QueryRow(ctx, q).Scan(
		&st.Total,
		&st.ForSale,
		&st.ForRent,
		&st.Land,
		&st.Carcass,
		&st.PreFinish,
		&st.Finished,
		&st.Featured,
	)
	if err != nil {
		return domain.PropertyStats{}, fmt.Errorf("property stats: %w", err)
	}
	return st, nil
}

func scanPropertyRow(row rowScanner) (domain.Property, error) {
	var (
		p        domain.Property
		idUUID   pgtype.UUID
		images   pgtype.FlatArray[string]
		features pgtype.FlatArray[string]
		desc     pgtype.Text
	)
	err := row.Scan(
		&idUUID,
		&p.Title,
		&p.Price,
		&p.Location,
		&p.Address,
		&p.Size,
		&p.Bedrooms,
		&p.PropertyType,
		&p.Category,
		&p.BuildingType,
		&images,
		&features,
		&desc,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}

	p.ID = uuidOrEmpty(idUUID)
	p.Images = textArrayOrEmpty(images)
	p.Features = textArrayOrEmpty(features)
	p.Description = textOrEmpty(desc)
	return p, nil
}
