package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"realty-agent/domain"
)

type SQLitePropertyRepository struct {
	db *sql.DB
}

const propertyColumns = `id, title, price, location, bedrooms, bathrooms, area, type, status,
	description, features, images, is_featured, created_at`

func (r *SQLitePropertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.FeaturedOnly {
		where = append(where, "is_featured = 1")
	}
	if filter.MinPrice > 0 {
		where = append(where, "price >= ?")
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, filter.MaxPrice)
	}

	query := "SELECT " + propertyColumns + " FROM properties"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SQLitePropertyRepository) Get(ctx context.Context, id string) (domain.Property, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Property{}, ErrNotFound
	}
	return p, err
}

func (r *SQLitePropertyRepository) Create(ctx context.Context, p domain.Property) error {
	features, images, err := encodePropertyLists(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO properties ("+propertyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Title, p.Price, p.Location, p.Bedrooms, p.Bathrooms, p.Area, string(p.Type), string(p.Status),
		p.Description, features, images, p.IsFeatured, p.CreatedAt.UnixNano(),
	)
	return err
}

func (r *SQLitePropertyRepository) Update(ctx context.Context, p domain.Property) error {
	features, images, err := encodePropertyLists(p)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET
		title = ?, price = ?, location = ?, bedrooms = ?, bathrooms = ?, area = ?, type = ?, status = ?,
		description = ?, features = ?, images = ?, is_featured = ?
		WHERE id = ?`,
		p.Title, p.Price, p.Location, p.Bedrooms, p.Bathrooms, p.Area, string(p.Type), string(p.Status),
		p.Description, features, images, p.IsFeatured, p.ID,
	)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLitePropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *SQLitePropertyRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, "SELECT COUNT(*) FROM properties")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (domain.Property, error) {
	var (
		p                domain.Property
		typ, status      string
		features, images string
		createdAt        int64
	)
	err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Location, &p.Bedrooms, &p.Bathrooms, &p.Area,
		&typ, &status, &p.Description, &features, &images, &p.IsFeatured, &createdAt)
	if err != nil {
		return domain.Property{}, err
	}
	p.Type = domain.PropertyType(typ)
	p.Status = domain.PropertyStatus(status)
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return domain.Property{}, err
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func encodePropertyLists(p domain.Property) (features, images string, err error) {
	f, err := marshalList(p.Features)
	if err != nil {
		return "", "", err
	}
	i, err := marshalList(p.Images)
	if err != nil {
		return "", "", err
	}
	return f, i, nil
}

func marshalList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	return string(b), err
}
