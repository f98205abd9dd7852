package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const productColumns = `id, name, description, price, price_cents, image, tags, keywords, created_at`

// List returns every product ordered by ID.
func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a product by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1 LIMIT 1`

	p, err := scanProduct(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (Product, error) {
	var (
		p        Product
		tags     []byte
		keywords []byte
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.PriceCents, &p.Image, &tags, &keywords, &p.CreatedAt); err != nil {
		return Product{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return Product{}, fmt.Errorf("decode tags for product %s: %w", p.ID, err)
		}
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &p.Keywords); err != nil {
			return Product{}, fmt.Errorf("decode keywords for product %s: %w", p.ID, err)
		}
	}
	return p, nil
}
