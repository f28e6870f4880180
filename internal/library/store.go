// Package library holds the domain model operations for the hospital
// reading collection: the in-memory collection store, the loan lifecycle,
// and the derived-status computations.
package library

import (
	"fmt"
	"log"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store holds the three collections as the single source of truth for the
// running process. Every replacement is total (callers supply the complete
// next collection) and flushes the full state of all three collections to
// storage in one transaction.
type Store struct {
	db *storage.Database

	mu      sync.RWMutex
	books   []entities.Book
	readers []entities.Reader
	loans   []entities.Loan
}

// NewStore loads the persisted collections. A missing or unparseable blob
// yields an empty collection, never an error.
func NewStore(db *storage.Database) (*Store, error) {
	s := &Store{db: db}

	if err := loadCollection(db, entities.CollectionKeyBooks, &s.books); err != nil {
		return nil, err
	}
	if err := loadCollection(db, entities.CollectionKeyReaders, &s.readers); err != nil {
		return nil, err
	}
	if err := loadCollection(db, entities.CollectionKeyLoans, &s.loans); err != nil {
		return nil, err
	}

	log.Printf("Collections loaded: %d books, %d readers, %d loans",
		len(s.books), len(s.readers), len(s.loans))

	return s, nil
}

func loadCollection[T any](db *storage.Database, key string, target *[]T) error {
	raw, err := db.ReadCollection(key)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		// Corrupted blob: start that collection empty rather than failing.
		log.Printf("WARNING: collection %s is unparseable, starting empty: %v", key, err)
		*target = nil
	}
	return nil
}

// Books returns a copy of the book collection.
func (s *Store) Books() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Book(nil), s.books...)
}

// Readers returns a copy of the reader collection.
func (s *Store) Readers() []entities.Reader {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Reader(nil), s.readers...)
}

// Loans returns a copy of the loan collection.
func (s *Store) Loans() []entities.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Loan(nil), s.loans...)
}

// ReplaceBooks swaps in the complete next book collection and persists.
func (s *Store) ReplaceBooks(books []entities.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
	return s.persistLocked()
}

// ReplaceReaders swaps in the complete next reader collection and persists.
func (s *Store) ReplaceReaders(readers []entities.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readers = readers
	return s.persistLocked()
}

// ReplaceLoans swaps in the complete next loan collection and persists.
func (s *Store) ReplaceLoans(loans []entities.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans = loans
	return s.persistLocked()
}

// ReplaceAll swaps in all three collections at once. Loan operations use
// this so the book status flip and the loan record land together.
func (s *Store) ReplaceAll(books []entities.Book, readers []entities.Reader, loans []entities.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = books
	s.readers = readers
	s.loans = loans
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	blobs := make(map[string][]byte, 3)

	for key, value := range map[string]any{
		entities.CollectionKeyBooks:   s.books,
		entities.CollectionKeyReaders: s.readers,
		entities.CollectionKeyLoans:   s.loans,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal collection %s: %w", key, err)
		}
		blobs[key] = raw
	}

	return s.db.WriteCollections(blobs)
}

// Snapshot is a point-in-time export of all three collections.
type Snapshot struct {
	ExportedAt time.Time         `json:"exportedAt"`
	Books      []entities.Book   `json:"books"`
	Readers    []entities.Reader `json:"readers"`
	Loans      []entities.Loan   `json:"loans"`
}

// Snapshot captures the current state of all three collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		ExportedAt: time.Now(),
		Books:      append([]entities.Book(nil), s.books...),
		Readers:    append([]entities.Reader(nil), s.readers...),
		Loans:      append([]entities.Loan(nil), s.loans...),
	}
}
