package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	// Registers the "mysql" driver.
	_ "github.com/go-sql-driver/mysql"
	// Registers the "pgx" driver.
	_ "github.com/jackc/pgx/v4/stdlib"

	currency "github.com/malusev998/currency-rates"
)

type Dialect string

const (
	MySQLDialect    Dialect = "mysql"
	PostgresDialect Dialect = "postgres"
)

var _ currency.Storage = &SQLStorage{}

// SQLStorage keeps values in a two column table, one row per key.
type SQLStorage struct {
	db        *sql.DB
	tableName string
	dialect   Dialect
}

func NewSQLStorage(db *sql.DB, dialect Dialect, tableName string) *SQLStorage {
	if tableName == "" {
		tableName = DefaultTableName
	}

	return &SQLStorage{
		db:        db,
		tableName: tableName,
		dialect:   dialect,
	}
}

func NewMySQLStorage(ctx context.Context, config MySQLConfig) (*SQLStorage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	return openSQLStorage(ctx, db, MySQLDialect, config.TableName, config.Migrate)
}

func NewPostgresStorage(ctx context.Context, config PostgresConfig) (*SQLStorage, error) {
	db, err := sql.Open("pgx", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	return openSQLStorage(ctx, db, PostgresDialect, config.TableName, config.Migrate)
}

func openSQLStorage(ctx context.Context, db *sql.DB, dialect Dialect, tableName string, migrate bool) (*SQLStorage, error) {
	st := NewSQLStorage(db, dialect, tableName)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return st, nil
}

func (s *SQLStorage) createTableQuery() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(name VARCHAR(64) NOT NULL PRIMARY KEY, value VARCHAR(64) NOT NULL);", s.tableName)
}

func (s *SQLStorage) selectQuery() string {
	if s.dialect == PostgresDialect {
		return fmt.Sprintf("SELECT value FROM %s WHERE name = $1;", s.tableName)
	}

	return fmt.Sprintf("SELECT value FROM %s WHERE name = ?;", s.tableName)
}

func (s *SQLStorage) upsertQuery() string {
	if s.dialect == PostgresDialect {
		return fmt.Sprintf("INSERT INTO %s(name, value) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value;", s.tableName)
	}

	return fmt.Sprintf("INSERT INTO %s(name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value);", s.tableName)
}

func (s *SQLStorage) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, s.createTableQuery())

	return err
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.selectQuery(), key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", currency.ErrKeyNotFound
	}

	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *SQLStorage) Set(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tx, err := s.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, s.upsertQuery())

	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, key := range keys {
		if _, err := stmt.ExecContext(ctx, key, values[key]); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLStorage) Drop(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", s.tableName))

	return err
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
