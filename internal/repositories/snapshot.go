package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// SQLSnapshot stores one JSON payload per bucket in marketplace_state.
// Dialect is the database/sql driver name: mysql, sqlite or pgx.
type SQLSnapshot struct {
	DB      *sql.DB
	Dialect string

	mu sync.Mutex
}

func NewSQLSnapshot(db *sql.DB, dialect string) *SQLSnapshot {
	return &SQLSnapshot{DB: db, Dialect: dialect}
}

func (s *SQLSnapshot) ph(n int) string {
	if s.Dialect == "pgx" || s.Dialect == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLSnapshot) payloadType() string {
	switch s.Dialect {
	case "mysql":
		return "LONGBLOB"
	case "pgx", "postgres":
		return "BYTEA"
	}
	return "BLOB"
}

// EnsureSchema creates the state table when missing.
func (s *SQLSnapshot) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS marketplace_state (
		bucket VARCHAR(64) PRIMARY KEY,
		payload %s NOT NULL,
		updated_at VARCHAR(40) NOT NULL
	)`, s.payloadType())
	if _, err := s.DB.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "create marketplace_state")
	}
	return nil
}

// Save replaces the payload of bucket with the JSON encoding of v.
func (s *SQLSnapshot) Save(ctx context.Context, bucket string, v any) (retErr error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", bucket)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin snapshot")
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	del := fmt.Sprintf("DELETE FROM marketplace_state WHERE bucket = %s", s.ph(1))
	if _, err := tx.ExecContext(ctx, del, bucket); err != nil {
		return errors.Wrapf(err, "clear %s", bucket)
	}
	ins := fmt.Sprintf("INSERT INTO marketplace_state (bucket, payload, updated_at) VALUES (%s, %s, %s)",
		s.ph(1), s.ph(2), s.ph(3))
	if _, err := tx.ExecContext(ctx, ins, bucket, data, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return errors.Wrapf(err, "write %s", bucket)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit %s", bucket)
	}
	return nil
}

// Load decodes the payload of bucket into dst. It reports false when the
// bucket has never been saved.
func (s *SQLSnapshot) Load(ctx context.Context, bucket string, dst any) (bool, error) {
	q := fmt.Sprintf("SELECT payload FROM marketplace_state WHERE bucket = %s", s.ph(1))
	var data []byte
	err := s.DB.QueryRowContext(ctx, q, bucket).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read %s", bucket)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, errors.Wrapf(err, "decode %s", bucket)
	}
	return true, nil
}
