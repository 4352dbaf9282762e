package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, sessionID string) (*domain.CartSnapshot, error) {
	const q = `
SELECT version, payload
FROM cart_snapshots
WHERE session_id = $1
`
	var version int
	var payload []byte
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(&version, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get session=%s error=%v", sessionID, err)
		return nil, err
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		r.logger.Printf("cart repo: get session=%s corrupt payload error=%v", sessionID, err)
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	snap.Version = version
	return &snap, nil
}

func (r *postgresRepo) Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	const q = `
INSERT INTO cart_snapshots (session_id, version, payload, last_modified)
VALUES ($1, $2, $3, $4)
ON CONFLICT (session_id) DO UPDATE SET
    version = EXCLUDED.version,
    payload = EXCLUDED.payload,
    last_modified = EXCLUDED.last_modified,
    updated_at = now()
`
	lastModified := time.UnixMilli(snap.LastModified).UTC()
	if _, err := r.pool.Exec(ctx, q, sessionID, snap.Version, payload, lastModified); err != nil {
		r.logger.Printf("cart repo: save session=%s error=%v", sessionID, err)
		return err
	}
	r.logger.Printf("cart repo: save session=%s items=%d", sessionID, len(snap.Items))
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	const q = `DELETE FROM cart_snapshots WHERE session_id = $1`
	if _, err := r.pool.Exec(ctx, q, sessionID); err != nil {
		r.logger.Printf("cart repo: delete session=%s error=%v", sessionID, err)
		return err
	}
	return nil
}
