package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"pedidos-tracker/internal/common"
)

// OpenDB connects the configured relational backend.
func OpenDB(cfg common.StoreConfig) (*sqlx.DB, error) {
	driver := "sqlite"
	if cfg.Backend == "postgres" {
		driver = "pgx"
	}
	db, err := sqlx.Connect(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Backend, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	return db, nil
}
