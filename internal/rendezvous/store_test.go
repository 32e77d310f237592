package rendezvous

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"eduverse/pkg/interfaces"
)

// Both implementations must satisfy the same slot contract.
func storeImplementations(t *testing.T) map[string]interfaces.RendezvousStore {
	t.Helper()

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rendezvous.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	return map[string]interfaces.RendezvousStore{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStore_FetchReturnsStoredValue(t *testing.T) {
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			if err := store.Store(ctx, "42"); err != nil {
				t.Fatalf("Store failed: %v", err)
			}

			roomID, err := store.Fetch(ctx)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if roomID != "42" {
				t.Errorf("Expected room ID 42, got %q", roomID)
			}
		})
	}
}

func TestFetch_WithoutPriorStore(t *testing.T) {
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			_, err := store.Fetch(context.Background())
			if !errors.Is(err, interfaces.ErrRoomIDNotFound) {
				t.Fatalf("Expected ErrRoomIDNotFound, got %v", err)
			}
		})
	}
}

// Last writer wins: a second store overwrites the first.
func TestStore_Overwrites(t *testing.T) {
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			if err := store.Store(ctx, "42"); err != nil {
				t.Fatalf("First store failed: %v", err)
			}
			if err := store.Store(ctx, "99"); err != nil {
				t.Fatalf("Second store failed: %v", err)
			}

			roomID, err := store.Fetch(ctx)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if roomID != "99" {
				t.Errorf("Expected last-written value 99, got %q", roomID)
			}
		})
	}
}

// Fetch reads without consuming: repeated fetches return the same value.
func TestFetch_DoesNotConsume(t *testing.T) {
	for name, store := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()
			ctx := context.Background()

			if err := store.Store(ctx, "7"); err != nil {
				t.Fatalf("Store failed: %v", err)
			}

			for i := 0; i < 3; i++ {
				roomID, err := store.Fetch(ctx)
				if err != nil {
					t.Fatalf("Fetch %d failed: %v", i, err)
				}
				if roomID != "7" {
					t.Errorf("Fetch %d: expected 7, got %q", i, roomID)
				}
			}
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rendezvous.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.Store(ctx, "42"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	roomID, err := reopened.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch after reopen failed: %v", err)
	}
	if roomID != "42" {
		t.Errorf("Expected persisted value 42, got %q", roomID)
	}
}

func TestSQLiteStore_StoreAfterClose(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "rendezvous.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := store.Store(context.Background(), "42"); !errors.Is(err, ErrStoreClosed) {
		t.Fatalf("Expected ErrStoreClosed, got %v", err)
	}
}
