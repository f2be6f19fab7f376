package faculty

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for faculty profiles.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}

type pgxFacultyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxFacultyRepository{
		pool: pool,
	}
}

func (r *pgxFacultyRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	const query = `
		SELECT id, email, name, department, designation, phone, created_at, updated_at
		FROM public.faculty_profiles
		WHERE email = $1
	`

	var p Profile
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.Department,
		&p.Designation,
		&p.Phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get faculty profile failed: %w", err)
	}

	return &p, nil
}

func (r *pgxFacultyRepository) Upsert(ctx context.Context, p *Profile) error {
	const query = `
		INSERT INTO public.faculty_profiles (email, name, department, designation, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
			department = EXCLUDED.department,
			designation = EXCLUDED.designation,
			phone = EXCLUDED.phone,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		p.Email,
		p.Name,
		p.Department,
		p.Designation,
		p.Phone,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert faculty profile failed: %w", err)
	}

	return nil
}
