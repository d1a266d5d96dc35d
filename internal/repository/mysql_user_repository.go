package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// MySQLUserRepository stores users through database/sql.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository returns a MySQL-backed implementation.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, password FROM users ORDER BY id`)
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

func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM users WHERE id = ?`, id)
}

func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT id, username, password FROM users WHERE username = ?`, username)
}

func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, user.Username, user.Password)
	if err != nil {
		return mapMySQLError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	if _, err := r.GetByID(ctx, user.ID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password = ? WHERE id = ?`, user.Username, user.Password, user.ID)
	return mapMySQLError(err)
}

func (r *MySQLUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
