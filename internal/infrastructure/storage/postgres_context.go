package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

const (
	postgresConnectAttempts = 10
	postgresConnectDelay    = 2 * time.Second
)

type postgresContextRepository struct {
	db *sql.DB
}

// NewPostgresContextRepository connects to Postgres and ensures the contexts
// table exists. Used instead of the file store when DATABASE_URL is set, so
// the dashboard can be deployed separately from the bot host.
func NewPostgresContextRepository(dsn string) (repository.ContextRepository, error) {
	db, err := openPostgresWithRetry(dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS user_contexts (
		username   TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create user_contexts table: %w", err)
	}
	return &postgresContextRepository{db: db}, nil
}

func openPostgresWithRetry(dsn string) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= postgresConnectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if pingErr := db.Ping(); pingErr == nil {
				return db, nil
			} else {
				err = pingErr
			}
		}
		if db != nil {
			_ = db.Close()
		}
		lastErr = err
		if attempt < postgresConnectAttempts {
			time.Sleep(postgresConnectDelay)
		}
	}
	return nil, fmt.Errorf("postgres connection failed: %w", lastErr)
}

// SaveAll replaces the stored contexts inside one transaction, mirroring the
// wholesale-replace semantics of the file store.
func (p *postgresContextRepository) SaveAll(ctx context.Context, store entity.ContextStore) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin context save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_contexts`); err != nil {
		return fmt.Errorf("clear user_contexts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO user_contexts (username, data, updated_at) VALUES ($1, $2, now())`)
	if err != nil {
		return fmt.Errorf("prepare context insert: %w", err)
	}
	defer stmt.Close()

	for username, userCtx := range store {
		data, err := json.Marshal(userCtx)
		if err != nil {
			return fmt.Errorf("marshal context for %s: %w", username, err)
		}
		if _, err := stmt.ExecContext(ctx, username, data); err != nil {
			return fmt.Errorf("insert context for %s: %w", username, err)
		}
	}
	return tx.Commit()
}

// LoadAll reads every stored context.
func (p *postgresContextRepository) LoadAll(ctx context.Context) (entity.ContextStore, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT username, data FROM user_contexts`)
	if err != nil {
		return nil, fmt.Errorf("query user_contexts: %w", err)
	}
	defer rows.Close()

	store := entity.ContextStore{}
	for rows.Next() {
		var username string
		var data []byte
		if err := rows.Scan(&username, &data); err != nil {
			return nil, fmt.Errorf("scan user context: %w", err)
		}
		var userCtx entity.UserContext
		if err := json.Unmarshal(data, &userCtx); err != nil {
			return nil, fmt.Errorf("decode context for %s: %w", username, err)
		}
		store[username] = &userCtx
	}
	return store, rows.Err()
}
