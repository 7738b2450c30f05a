package session

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations for the sessions table, ready for
// db.Migrate.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// DBTX is the subset of pgxpool.Pool used by PostgresStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the dispatch_sessions table.
type PostgresStore struct {
	db DBTX
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	insertSessionSQL = `INSERT INTO dispatch_sessions (id, token, data, created_at, last_active_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectSessionSQL = `SELECT id, token, data, created_at, last_active_at, expires_at
FROM dispatch_sessions WHERE token = $1`

	updateSessionSQL = `UPDATE dispatch_sessions
SET data = $2, last_active_at = $3, expires_at = $4
WHERE token = $1`

	deleteSessionSQL = `DELETE FROM dispatch_sessions WHERE token = $1`

	deleteExpiredSQL = `DELETE FROM dispatch_sessions WHERE expires_at < $1`
)

func (p *PostgresStore) Create(ctx context.Context, s *Session) error {
	if s == nil {
		return ErrNilSession
	}
	if s.Token == "" {
		return ErrInvalidToken
	}

	data, err := json.Marshal(s.Values)
	if err != nil {
		return err
	}
	_, err = p.db.Exec(ctx, insertSessionSQL, s.ID, s.Token, data, s.CreatedAt, s.LastActiveAt, s.ExpiresAt)
	return err
}

func (p *PostgresStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var (
		s    Session
		data []byte
	)
	err := p.db.QueryRow(ctx, selectSessionSQL, token).
		Scan(&s.ID, &s.Token, &data, &s.CreatedAt, &s.LastActiveAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.Values); err != nil {
			return nil, err
		}
	}
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	if s.IsExpired() {
		return nil, ErrExpired
	}
	return &s, nil
}

func (p *PostgresStore) Update(ctx context.Context, s *Session) error {
	if s == nil {
		return ErrNilSession
	}

	data, err := json.Marshal(s.Values)
	if err != nil {
		return err
	}
	tag, err := p.db.Exec(ctx, updateSessionSQL, s.Token, data, s.LastActiveAt, s.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := p.db.Exec(ctx, deleteSessionSQL, token)
	return err
}

// DeleteExpired removes sessions that expired before now and reports how
// many rows were deleted.
func (p *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteExpiredSQL, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Store = (*PostgresStore)(nil)
