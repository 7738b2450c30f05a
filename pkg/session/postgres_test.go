package session_test

import (
	"context"
	"encoding/json"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/session"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	tag      string
	row      fakeRow
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.NewCommandTag(f.tag), nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return f.row
}

func TestPostgresStore_Create(t *testing.T) {
	t.Parallel()

	db := &fakeDB{tag: "INSERT 0 1"}
	store := session.NewPostgresStore(db)

	sess := session.New("id", "tok", time.Now().Add(time.Hour))
	sess.SetValue("k", "v")
	require.NoError(t, store.Create(context.Background(), sess))

	require.Len(t, db.execArgs, 1)
	require.Equal(t, "id", db.execArgs[0][0])
	require.Equal(t, "tok", db.execArgs[0][1])
	require.JSONEq(t, `{"k":"v"}`, string(db.execArgs[0][2].([]byte)))
}

func TestPostgresStore_Get(t *testing.T) {
	t.Parallel()

	now := time.Now()
	data, err := json.Marshal(map[string]any{"k": "v"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{row: fakeRow{values: []any{"id", "tok", data, now, now, now.Add(time.Hour)}}}
		sess, err := session.NewPostgresStore(db).Get(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, "id", sess.ID)
		require.Equal(t, "v", sess.Values["k"])
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{row: fakeRow{values: []any{"id", "tok", data, now, now, now.Add(-time.Hour)}}}
		_, err := session.NewPostgresStore(db).Get(context.Background(), "tok")
		require.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		_, err := session.NewPostgresStore(db).Get(context.Background(), "tok")
		require.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestPostgresStore_UpdateMissing(t *testing.T) {
	t.Parallel()

	db := &fakeDB{tag: "UPDATE 0"}
	err := session.NewPostgresStore(db).Update(context.Background(), session.New("id", "tok", time.Now().Add(time.Hour)))
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestPostgresStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	db := &fakeDB{tag: "DELETE 3"}
	n, err := session.NewPostgresStore(db).DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestMigrations(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(session.Migrations(), ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.Equal(t, "00001_create_sessions.sql", entries[0].Name())
}
