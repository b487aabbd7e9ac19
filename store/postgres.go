package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	personasdk "github.com/edgemindTech/edge-persona-sdk-go"
)

// PgxQuerier abstracts the pgxpool.Pool for mocking in tests.
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresProfileStore keeps the profile and catalog as JSONB documents in
// a single key/value table, one row per document.
type PostgresProfileStore struct {
	pool  PgxQuerier
	table string
	ctx   context.Context
}

// PostgresStoreConfig configures the Postgres store.
type PostgresStoreConfig struct {
	Table       string // table name, default "edge_persona_docs"
	AutoMigrate bool   // create the table if missing, default true
}

// NewPostgresProfileStore creates a profile store backed by PostgreSQL.
// The pool must be already connected.
func NewPostgresProfileStore(pool PgxQuerier, config ...PostgresStoreConfig) (*PostgresProfileStore, error) {
	cfg := PostgresStoreConfig{Table: "edge_persona_docs", AutoMigrate: true}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Table == "" {
		cfg.Table = "edge_persona_docs"
	}

	s := &PostgresProfileStore{pool: pool, table: cfg.Table, ctx: context.Background()}
	if cfg.AutoMigrate {
		if err := s.migrate(); err != nil {
			return nil, fmt.Errorf("auto-migrate failed: %w", err)
		}
	}
	return s, nil
}

func (s *PostgresProfileStore) migrate() error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		k TEXT  NOT NULL,
		v JSONB NOT NULL,
		PRIMARY KEY (k)
	)`, s.table)
	_, err := s.pool.Exec(s.ctx, ddl)
	return err
}

func (s *PostgresProfileStore) get(key string, out any) (bool, error) {
	var raw []byte
	err := s.pool.QueryRow(
		s.ctx,
		fmt.Sprintf("SELECT v FROM %s WHERE k=$1", s.table),
		key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *PostgresProfileStore) put(key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.pool.Exec(
		s.ctx,
		fmt.Sprintf("INSERT INTO %s (k, v) VALUES ($1, $2) ON CONFLICT (k) DO UPDATE SET v=EXCLUDED.v", s.table),
		key, data,
	)
	return err
}

func (s *PostgresProfileStore) Load() (*personasdk.PersonalityProfile, error) {
	var profile personasdk.PersonalityProfile
	found, err := s.get("profile", &profile)
	if err != nil || !found {
		return nil, err
	}
	profile.EnsureSchemaVersion()
	return &profile, nil
}

func (s *PostgresProfileStore) Save(profile *personasdk.PersonalityProfile) error {
	return s.put("profile", profile)
}

func (s *PostgresProfileStore) LoadCatalog() (personasdk.Catalog, error) {
	var catalog personasdk.Catalog
	found, err := s.get("all_cards", &catalog)
	if err != nil || !found {
		return nil, err
	}
	return catalog, nil
}

func (s *PostgresProfileStore) SaveCatalog(catalog personasdk.Catalog) error {
	return s.put("all_cards", catalog)
}

var (
	_ personasdk.ProfileStore = (*PostgresProfileStore)(nil)
	_ personasdk.CatalogStore = (*PostgresProfileStore)(nil)
)
