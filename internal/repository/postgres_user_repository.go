package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/catalog-service/internal/domain"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository returns a Postgres-backed implementation.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, username, password FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM users WHERE id=$1`, id)
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM users WHERE username=$1`, username)
}

func (r *postgresUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password)
        VALUES ($1, $2)
        RETURNING id`
	err := r.pool.QueryRow(ctx, query, user.Username, user.Password).Scan(&user.ID)
	return mapPostgresError(err)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, password=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, user.Username, user.Password, user.ID)
	if err != nil {
		return mapPostgresError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
