package devserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"tcm/internal/config"
)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		seq BIGINT AUTO_INCREMENT PRIMARY KEY,
		collection VARCHAR(64) NOT NULL,
		doc_id VARCHAR(64) NOT NULL,
		body JSON NOT NULL,
		UNIQUE KEY uniq_collection_doc (collection, doc_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

// MySQLRepository stores documents as JSON rows in a single MySQL table,
// ordered by insertion sequence.
type MySQLRepository struct {
	db *sql.DB
}

// NewMySQLRepository creates the configured database and table if needed
// and returns a repository connected to it.
func NewMySQLRepository(ctx context.Context, cfg *config.Config) (*MySQLRepository, error) {
	if err := ensureDatabase(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.GetDSN(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &MySQLRepository{db: db}, nil
}

// ensureDatabase connects to the server without a schema and creates the database
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	if !isValidDatabaseName(cfg.DBDatabase) {
		return fmt.Errorf("invalid database name: %s", cfg.DBDatabase)
	}

	db, err := sql.Open("mysql", cfg.GetDSN(false))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", cfg.DBDatabase)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBDatabase, err)
	}
	return nil
}

// isValidDatabaseName only allows names that are safe to quote into DDL
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		default:
			return false
		}
	}
	return !strings.HasPrefix(name, "$")
}

// List returns all documents in a collection
func (r *MySQLRepository) List(ctx context.Context, collection string) ([]Document, error) {
	if !isKnownCollection(collection) {
		return nil, fmt.Errorf("collection %s: %w", collection, ErrNotFound)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT body FROM documents WHERE collection = ? ORDER BY seq", collection)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		var doc Document
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Get returns one document
func (r *MySQLRepository) Get(ctx context.Context, collection, id string) (Document, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND doc_id = ?", collection, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Create stores a new document
func (r *MySQLRepository) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if !isKnownCollection(collection) {
		return nil, fmt.Errorf("collection %s: %w", collection, ErrNotFound)
	}

	stored := doc.clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
	}
	stored["id"] = id

	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (collection, doc_id, body) VALUES (?, ?, ?)", collection, id, body,
	); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrConflict)
		}
		return nil, fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return stored, nil
}

// erDupEntry is the MySQL server error for a unique key violation
const erDupEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == erDupEntry
}

// Replace overwrites an existing document
func (r *MySQLRepository) Replace(ctx context.Context, collection, id string, doc Document) (Document, error) {
	if _, err := r.Get(ctx, collection, id); err != nil {
		return nil, err
	}

	stored := doc.clone()
	stored["id"] = id
	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE documents SET body = ? WHERE collection = ? AND doc_id = ?", body, collection, id,
	); err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return stored, nil
}

// Delete removes a document
func (r *MySQLRepository) Delete(ctx context.Context, collection, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = ? AND doc_id = ?", collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// Close closes the database connection
func (r *MySQLRepository) Close() error {
	return r.db.Close()
}
