package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devtrackhq/event-tracker/internal/apperr"
	"github.com/devtrackhq/event-tracker/internal/models"
)

// schemaSQL is embedded so /init can rebuild the table without external files.
//
//go:embed schema.sql
var schemaSQL string

const dropSQL = `DROP TABLE IF EXISTS events`

// Pool constraints match the deployment sizing: a warm floor of connections
// plus a hard ceiling; handlers at the ceiling wait for a release.
const (
	poolMinConns = 5
	poolMaxConns = 10
)

// PostgresStore owns the SQL shape of the events table. It is the only
// state shared across concurrent request handlers.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore parses the connection URL, applies pool constraints, and
// fails fast if the target is unreachable. The URL must name a database.
func NewPostgresStore(dbURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, err
	}
	if cfg.ConnConfig.Database == "" {
		return nil, errors.New("connection string must name a database")
	}
	cfg.MinConns = poolMinConns
	cfg.MaxConns = poolMaxConns

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (p *PostgresStore) Close() {
	p.pool.Close()
}

// ResetSchema unconditionally drops and recreates the events table. Safe to
// call repeatedly; wipes all stored events every time.
func (p *PostgresStore) ResetSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
		return apperr.Database(err)
	}
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return apperr.Database(err)
	}
	return nil
}

// InsertEvent persists one event and returns the store-assigned id. The
// payload is serialized to JSON text before insert so it round-trips
// verbatim through the JSON column.
func (p *PostgresStore) InsertEvent(ctx context.Context, ev models.DevelopmentEvent) (int64, error) {
	dataJSON, err := json.Marshal(ev.Data)
	if err != nil {
		return 0, apperr.JSON(err)
	}

	var id int64
	err = p.pool.QueryRow(ctx, `
		INSERT INTO events (timestamp, source, event_type, data)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, ev.Timestamp, ev.Source, ev.EventType, string(dataJSON)).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		// The insert succeeded but produced no id row; the table's
		// auto-assignment assumptions are broken.
		return 0, apperr.Internal("could not retrieve last insert ID")
	}
	if err != nil {
		return 0, apperr.Database(err)
	}
	return id, nil
}

// ListEvents returns every stored event matching the filter, newest
// timestamp first. A row whose stored payload no longer parses comes back
// with null data rather than failing the listing.
func (p *PostgresStore) ListEvents(ctx context.Context, f models.EventFilter) ([]models.DevelopmentEvent, error) {
	query, args := buildListQuery(f)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Database(err)
	}
	defer rows.Close()

	events := []models.DevelopmentEvent{}
	for rows.Next() {
		var ev models.DevelopmentEvent
		var raw []byte
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.Source, &ev.EventType, &raw); err != nil {
			return nil, apperr.Database(err)
		}
		ev.Data = normalizeData(raw)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Database(err)
	}
	return events, nil
}

// normalizeData re-parses a stored payload. Text that is no longer valid
// JSON reads back as null rather than failing the listing. Postgres's JSON
// column validates on write, so the invalid branch guards the contract, not
// an expected state.
func normalizeData(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	return nil
}
