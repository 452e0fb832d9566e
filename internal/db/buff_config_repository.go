package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/unitsim/internal/data"
)

// BuffConfigRepository reads and writes the static buff catalog.
// Buff instances are never persisted.
type BuffConfigRepository struct {
	db *pgxpool.Pool
}

// NewBuffConfigRepository создаёт новый BuffConfigRepository.
func NewBuffConfigRepository(db *pgxpool.Pool) *BuffConfigRepository {
	return &BuffConfigRepository{db: db}
}

// LoadAll загружает все конфиги баффов, упорядоченные по id.
func (r *BuffConfigRepository) LoadAll(ctx context.Context) ([]data.BuffConfig, error) {
	query := `
		SELECT id, class, tag, type, one_shot, duration_ms, tick_interval_ms,
		       max_layer, refresh_on_layer, remove_all_on_expiry, params
		FROM buff_configs
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying buff configs: %w", err)
	}
	defer rows.Close()

	configs := make([]data.BuffConfig, 0, 32)
	for rows.Next() {
		cfg, err := scanBuffConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buff config rows: %w", err)
	}

	return configs, nil
}

// LoadCatalog загружает все конфиги и собирает из них каталог.
func (r *BuffConfigRepository) LoadCatalog(ctx context.Context) (*data.BuffCatalog, error) {
	configs, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := data.NewBuffCatalog(configs)
	if err != nil {
		return nil, fmt.Errorf("building buff catalog from database: %w", err)
	}
	return catalog, nil
}

// Upsert inserts cfg or replaces the row with the same id.
func (r *BuffConfigRepository) Upsert(ctx context.Context, cfg data.BuffConfig) error {
	return upsertBuffConfig(ctx, r.db, cfg)
}

// Seed upserts every config in one transaction.
func (r *BuffConfigRepository) Seed(ctx context.Context, configs []*data.BuffConfig) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit возвращает ErrTxClosed
	}()

	for _, cfg := range configs {
		if err := upsertBuffConfig(ctx, tx, *cfg); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing buff configs: %w", err)
	}
	return nil
}

// Delete removes the config with id. Returns false if it did not exist.
func (r *BuffConfigRepository) Delete(ctx context.Context, id int32) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM buff_configs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting buff config %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsertBuffConfig(ctx context.Context, db execer, cfg data.BuffConfig) error {
	params := cfg.Params
	if params == nil {
		params = map[string]string{}
	}
	_, err := db.Exec(ctx, `
		INSERT INTO buff_configs (id, class, tag, type, one_shot, duration_ms, tick_interval_ms,
		                          max_layer, refresh_on_layer, remove_all_on_expiry, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			class = EXCLUDED.class,
			tag = EXCLUDED.tag,
			type = EXCLUDED.type,
			one_shot = EXCLUDED.one_shot,
			duration_ms = EXCLUDED.duration_ms,
			tick_interval_ms = EXCLUDED.tick_interval_ms,
			max_layer = EXCLUDED.max_layer,
			refresh_on_layer = EXCLUDED.refresh_on_layer,
			remove_all_on_expiry = EXCLUDED.remove_all_on_expiry,
			params = EXCLUDED.params,
			updated_at = NOW()`,
		cfg.ID, cfg.Class, cfg.Tag.String(), cfg.Type.String(), cfg.OneShot,
		cfg.Duration.Milliseconds(), cfg.TickInterval.Milliseconds(),
		cfg.MaxLayer, cfg.RefreshOnLayer, cfg.RemoveAllOnExpiry, params,
	)
	if err != nil {
		return fmt.Errorf("upserting buff config %d: %w", cfg.ID, err)
	}
	return nil
}

func scanBuffConfig(rows pgx.Rows) (data.BuffConfig, error) {
	var (
		cfg                data.BuffConfig
		tag, typ           string
		durationMs, tickMs int64
	)
	if err := rows.Scan(
		&cfg.ID, &cfg.Class, &tag, &typ, &cfg.OneShot, &durationMs, &tickMs,
		&cfg.MaxLayer, &cfg.RefreshOnLayer, &cfg.RemoveAllOnExpiry, &cfg.Params,
	); err != nil {
		return cfg, fmt.Errorf("scanning buff config row: %w", err)
	}

	var err error
	if cfg.Tag, err = data.ParseBuffTag(tag); err != nil {
		return cfg, fmt.Errorf("buff config %d: %w", cfg.ID, err)
	}
	if cfg.Type, err = data.ParseBuffType(typ); err != nil {
		return cfg, fmt.Errorf("buff config %d: %w", cfg.ID, err)
	}
	cfg.Duration = time.Duration(durationMs) * time.Millisecond
	cfg.TickInterval = time.Duration(tickMs) * time.Millisecond
	return cfg, nil
}
