package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/config"
)

// MySQL wraps a database/sql handle opened with the MySQL driver.
type MySQL struct {
	DB *sql.DB
}

// NewMySQL opens and pings a MySQL database.
func NewMySQL(ctx context.Context, cfg config.SQLConfig, logger *zap.Logger) (*MySQL, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mysql DSN not provided")
	}

	driverCfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	driverCfg.ParseTime = true

	connector, err := mysql.NewConnector(driverCfg)
	if err != nil {
		return nil, err
	}
	db := sql.OpenDB(connector)

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.ConnMaxIdleSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleSec) * time.Second)
	}
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("connected to mysql")
	return &MySQL{DB: db}, nil
}

// Close releases the handle.
func (m *MySQL) Close() {
	if m != nil && m.DB != nil {
		_ = m.DB.Close()
	}
}

// Ping verifies MySQL connectivity.
func (m *MySQL) Ping(ctx context.Context) error {
	if m == nil || m.DB == nil {
		return errors.New("mysql handle not configured")
	}
	return m.DB.PingContext(ctx)
}

// Exec runs one SQL statement. It satisfies the migration runner.
func (m *MySQL) Exec(ctx context.Context, script string) error {
	_, err := m.DB.ExecContext(ctx, script)
	return err
}
