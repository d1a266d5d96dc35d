package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const mysqlDuplicateEntry = 1062

// MySQLProductRepository stores products through database/sql.
type MySQLProductRepository struct {
	db *sql.DB
}

// NewMySQLProductRepository returns a MySQL-backed implementation.
func NewMySQLProductRepository(db *sql.DB) *MySQLProductRepository {
	return &MySQLProductRepository{db: db}
}

func (r *MySQLProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, quantity FROM products ORDER BY created_at, id`)
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

func (r *MySQLProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, quantity FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, quantity) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity)
	return mapMySQLError(err)
}

// Update relies on the existence check because MySQL reports zero affected
// rows when the new values equal the stored ones.
func (r *MySQLProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if _, err := r.GetByID(ctx, p.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, quantity = ? WHERE id = ?`,
		p.Name, p.Description, p.Price, p.Quantity, p.ID)
	return mapMySQLError(err)
}

func (r *MySQLProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapMySQLError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}
