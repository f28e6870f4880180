package library

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

func setupTestDB(t *testing.T) (*storage.Database, func()) {
	t.Helper()

	dbPath := "./test_store_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := storage.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestStore_EmptyDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store, err := NewStore(db)
	require.NoError(t, err)

	assert.Empty(t, store.Books())
	assert.Empty(t, store.Readers())
	assert.Empty(t, store.Loans())
}

func TestStore_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store, err := NewStore(db)
	require.NoError(t, err)

	due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	books := []entities.Book{{ID: "b1", Title: "Dom Casmurro", Author: "Machado de Assis", Status: entities.BookStatusLoaned}}
	readers := []entities.Reader{{ID: "r1", Name: "Ana", JoinedAt: time.Now()}}
	loans := []entities.Loan{{ID: "l1", BookID: "b1", ReaderID: "r1", LoanDate: time.Now(), DueDate: due, Status: entities.LoanStatusActive}}

	require.NoError(t, store.ReplaceAll(books, readers, loans))

	// A fresh store over the same database sees the persisted collections
	reloaded, err := NewStore(db)
	require.NoError(t, err)

	gotBooks := reloaded.Books()
	require.Len(t, gotBooks, 1)
	assert.Equal(t, "Dom Casmurro", gotBooks[0].Title)
	assert.Equal(t, entities.BookStatusLoaned, gotBooks[0].Status)

	gotLoans := reloaded.Loans()
	require.Len(t, gotLoans, 1)
	assert.True(t, due.Equal(gotLoans[0].DueDate))
	assert.Nil(t, gotLoans[0].ReturnDate)

	require.Len(t, reloaded.Readers(), 1)
	assert.Equal(t, "Ana", reloaded.Readers()[0].Name)
}

func TestStore_CorruptBlobStartsEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.WriteCollections(map[string][]byte{
		entities.CollectionKeyBooks: []byte("{not json"),
	})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)
	assert.Empty(t, store.Books())
}

func TestStore_ReturnedCopiesAreIsolated(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store, err := NewStore(db)
	require.NoError(t, err)

	require.NoError(t, store.ReplaceBooks([]entities.Book{{ID: "b1", Title: "Original", Author: "A", Status: entities.BookStatusAvailable}}))

	books := store.Books()
	books[0].Title = "Mutated"

	assert.Equal(t, "Original", store.Books()[0].Title)
}

func TestStore_Snapshot(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store, err := NewStore(db)
	require.NoError(t, err)

	require.NoError(t, store.ReplaceBooks([]entities.Book{{ID: "b1", Title: "One", Author: "A", Status: entities.BookStatusAvailable}}))

	snap := store.Snapshot()
	assert.False(t, snap.ExportedAt.IsZero())
	assert.Len(t, snap.Books, 1)
	assert.Empty(t, snap.Readers)
	assert.Empty(t, snap.Loans)
}
