package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const schemaKV = `
CREATE TABLE IF NOT EXISTS estoque_kv (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KVStore implementa repository.KeyValueStore sobre la tabla estoque_kv.
type KVStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewKVStore construye el store y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	s := &KVStore{pool: pool, tx: NewTxRunner(pool)}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureSchema crea estoque_kv (idempotente).
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaKV); err != nil {
		return fmt.Errorf("crear tabla estoque_kv: %w", err)
	}
	return nil
}

// Get devuelve el JSON guardado bajo key; found=false si no hay fila.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getKV(ctx, s.pool, key)
}

// Put escribe todas las entradas en una sola transacción: o se guardan todas o ninguna.
func (s *KVStore) Put(ctx context.Context, entries ...repository.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.tx.Run(ctx, func(q Querier) error {
		for _, e := range entries {
			if err := putKV(ctx, q, e); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close cierra el pool.
func (s *KVStore) Close() error {
	s.pool.Close()
	return nil
}

func getKV(ctx context.Context, q Querier, key string) ([]byte, bool, error) {
	var raw string
	err := q.QueryRow(ctx, `SELECT value::text FROM estoque_kv WHERE key = $1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", key, err)
	}
	return []byte(raw), true, nil
}

func putKV(ctx context.Context, q Querier, e repository.Entry) error {
	const query = `
		INSERT INTO estoque_kv (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := q.Exec(ctx, query, e.Key, string(e.Value)); err != nil {
		return fmt.Errorf("escribir %s: %w", e.Key, err)
	}
	return nil
}
