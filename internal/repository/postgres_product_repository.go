package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-service/internal/domain"
)

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository returns a Postgres-backed implementation.
func NewPostgresProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresProductRepository{pool: pool}
}

func (r *postgresProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id::text, name, description, price, quantity
        FROM products ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id::text, name, description, price, quantity
        FROM products WHERE id=$1`
	var p domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Quantity,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, p *domain.Product) error {
	const query = `
        INSERT INTO products (id, name, description, price, quantity)
        VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Description, p.Price, p.Quantity)
	return mapPostgresError(err)
}

func (r *postgresProductRepository) Update(ctx context.Context, p *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, description=$2, price=$3, quantity=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query, p.Name, p.Description, p.Price, p.Quantity, p.ID)
	if err != nil {
		return mapPostgresError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func mapPostgresError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicate
	}
	return err
}
