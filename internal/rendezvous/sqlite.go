// Package rendezvous implements the transient room-ID hand-off between the
// client that initiates a chat and the client joining it. The whole store is
// one slot: last writer wins, fetch does not consume, no expiry.
package rendezvous

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"eduverse/pkg/interfaces"
)

const schema = `
CREATE TABLE IF NOT EXISTS rendezvous (
	slot      INTEGER PRIMARY KEY CHECK (slot = 1),
	room_id   TEXT NOT NULL,
	stored_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore persists the rendezvous slot so it survives process restarts.
// All writes funnel through a single goroutine; SQLite performs poorly under
// concurrent writers even in WAL mode.
type SQLiteStore struct {
	db       *sql.DB
	writeCh  chan writeOp
	shutdown chan struct{}
	wg       sync.WaitGroup
	closed   bool
	mu       sync.RWMutex // protects closed
}

type writeOp struct {
	operation func(*sql.DB) error
	result    chan error
}

// NewSQLiteStore opens (and creates if needed) the store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open rendezvous database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create rendezvous schema: %w", err)
	}

	s := &SQLiteStore{
		db:       db,
		writeCh:  make(chan writeOp, 16),
		shutdown: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.writeLoop()

	return s, nil
}

func (s *SQLiteStore) writeLoop() {
	defer s.wg.Done()

	for {
		select {
		case op := <-s.writeCh:
			op.result <- op.operation(s.db)
		case <-s.shutdown:
			return
		}
	}
}

func (s *SQLiteStore) executeWrite(ctx context.Context, operation func(*sql.DB) error) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	result := make(chan error, 1)

	select {
	case s.writeCh <- writeOp{operation: operation, result: result}:
		select {
		case err := <-result:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-s.shutdown:
		return ErrStoreClosed
	}
}

// Store overwrites the slot with roomID, unconditionally.
func (s *SQLiteStore) Store(ctx context.Context, roomID string) error {
	return s.executeWrite(ctx, func(db *sql.DB) error {
		_, err := db.Exec(`
			INSERT INTO rendezvous (slot, room_id, stored_at) VALUES (1, ?, ?)
			ON CONFLICT (slot) DO UPDATE SET room_id = excluded.room_id, stored_at = excluded.stored_at`,
			roomID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to store room ID: %w", err)
		}
		return nil
	})
}

// Fetch returns the current slot value without consuming it.
func (s *SQLiteStore) Fetch(ctx context.Context) (string, error) {
	var roomID string
	err := s.db.QueryRowContext(ctx, `SELECT room_id FROM rendezvous WHERE slot = 1`).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", interfaces.ErrRoomIDNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch room ID: %w", err)
	}
	return roomID, nil
}

// Close stops the write loop and closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.shutdown)
	s.wg.Wait()
	return s.db.Close()
}
