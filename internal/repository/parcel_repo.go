package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/parcelworks/lotscope/internal/config"
	"github.com/parcelworks/lotscope/internal/models"
)

// ErrNoRecord is returned when a parcel has never been cached.
var ErrNoRecord = errors.New("no cached parcel record")

// ParcelRepository caches source parcel records fetched from the county
// service: postgres for durability, redis in front for hot reads. Computed
// analyses are never stored here.
type ParcelRepository struct {
	db    *sql.DB
	redis *redis.Client
	ttl   time.Duration
}

// NewParcelRepository opens the postgres pool and the redis client.
func NewParcelRepository(cfg *config.Config) (*ParcelRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return &ParcelRepository{
		db:    db,
		redis: redis.NewClient(opts),
		ttl:   cfg.CacheTTL,
	}, nil
}

// EnsureSchema creates the parcel cache table when missing.
func (r *ParcelRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS parcels (
			apn TEXT PRIMARY KEY,
			record JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create parcels table: %w", err)
	}
	return nil
}

// Close closes the database and redis connections
func (r *ParcelRepository) Close() error {
	if r.redis != nil {
		r.redis.Close()
	}
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func cacheKey(apn string) string {
	return "parcel:" + apn
}

// Get returns the cached record for an APN, preferring redis and falling
// back to postgres (rehydrating redis on a hit). Returns ErrNoRecord on a
// full miss.
func (r *ParcelRepository) Get(ctx context.Context, apn string) (*models.PropertyRecord, error) {
	if data, err := r.redis.Get(ctx, cacheKey(apn)).Bytes(); err == nil {
		var rec models.PropertyRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		// Corrupt cache entry; fall through to postgres.
	}

	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT record FROM parcels WHERE apn = $1`, apn).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("query parcel %s: %w", apn, err)
	}

	var rec models.PropertyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode parcel %s: %w", apn, err)
	}

	r.redis.Set(ctx, cacheKey(apn), raw, r.ttl)
	return &rec, nil
}

// Put upserts the record into postgres and refreshes the redis entry.
func (r *ParcelRepository) Put(ctx context.Context, rec *models.PropertyRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode parcel %s: %w", rec.APN, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO parcels (apn, record, fetched_at) VALUES ($1, $2, $3)
		 ON CONFLICT (apn) DO UPDATE SET record = $2, fetched_at = $3`,
		rec.APN, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store parcel %s: %w", rec.APN, err)
	}

	r.redis.Set(ctx, cacheKey(rec.APN), raw, r.ttl)
	return nil
}
