package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"docrag/internal/config"
	"docrag/internal/models"
	"docrag/internal/ragerr"
)

// SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// Postgres is a Store backed by bun over Postgres.
type Postgres struct {
	db *bun.DB
}

func NewPostgres(cfg *config.DatabaseConfig) *Postgres {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Postgres{db: db}
}

// Init creates the metadata table if it does not exist. The unique constraint
// on filename comes from the model definition.
func (s *Postgres) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*models.DocumentMetadata)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return ragerr.Wrap(ragerr.KindStore, err, "create metadata table")
	}
	return nil
}

func (s *Postgres) Insert(ctx context.Context, meta *models.DocumentMetadata) error {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.UploadDate.IsZero() {
		meta.UploadDate = time.Now().UTC()
	}
	if _, err := s.db.NewInsert().Model(meta).Exec(ctx); err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
			return ragerr.Wrap(ragerr.KindConflict, err, "document %q already exists", meta.Filename)
		}
		return ragerr.Wrap(ragerr.KindStore, err, "insert metadata for %q", meta.Filename)
	}
	return nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	count, err := s.db.NewSelect().Model((*models.DocumentMetadata)(nil)).Count(ctx)
	if err != nil {
		return 0, ragerr.Wrap(ragerr.KindStore, err, "count metadata records")
	}
	return count, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.DocumentMetadata, error) {
	var records []models.DocumentMetadata
	err := s.db.NewSelect().
		Model(&records).
		Order("upload_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, ragerr.Wrap(ragerr.KindStore, err, "list metadata records")
	}
	return records, nil
}

func (s *Postgres) Close() error { return s.db.Close() }
