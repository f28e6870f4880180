package library

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bibliosmart/bibliosmart/internal/entities"
)

// Service implements the library operations over the collection store.
// Validation happens here, once, at the operation boundary; the HTTP layer
// only translates errors into status codes.
//
// Mutating operations are serialized by a service-level lock so a
// read-modify-write never interleaves with another mutation.
type Service struct {
	store *Store

	mu  sync.Mutex
	now func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

type AddBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Genre       string
	Description string
}

// AddBook catalogues a new book. Status starts as available; no uniqueness
// is enforced on title or ISBN, duplicates are legitimate copies.
func (s *Service) AddBook(in AddBookInput) (entities.Book, error) {
	if strings.TrimSpace(in.Title) == "" {
		return entities.Book{}, ErrTitleRequired
	}
	if strings.TrimSpace(in.Author) == "" {
		return entities.Book{}, ErrAuthorRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := entities.Book{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		ISBN:        strings.TrimSpace(in.ISBN),
		Genre:       strings.TrimSpace(in.Genre),
		Description: strings.TrimSpace(in.Description),
		Status:      entities.BookStatusAvailable,
	}

	books := append(s.store.Books(), book)
	if err := s.store.ReplaceBooks(books); err != nil {
		return entities.Book{}, fmt.Errorf("persist books: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book unconditionally, even with an active loan
// outstanding. Loan records referencing the book keep the dangling id and
// display layers substitute a removed placeholder. This soft-reference
// behavior is deliberate: loan history must survive catalogue cleanup.
func (s *Service) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.store.Books()
	next := books[:0]
	for _, b := range books {
		if b.ID != id {
			next = append(next, b)
		}
	}
	if len(next) == len(books) {
		return ErrBookNotFound
	}
	return s.store.ReplaceBooks(next)
}

type AddReaderInput struct {
	Name          string
	AdmissionDate *time.Time
	Sector        string
	Wing          string
	Room          string
	Bed           string
}

// AddReader registers a patient as a reader. JoinedAt is the registration
// time, distinct from the optional hospital admission date.
func (s *Service) AddReader(in AddReaderInput) (entities.Reader, error) {
	if strings.TrimSpace(in.Name) == "" {
		return entities.Reader{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reader := entities.Reader{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		JoinedAt:      s.now(),
		AdmissionDate: in.AdmissionDate,
		Sector:        strings.TrimSpace(in.Sector),
		Wing:          strings.TrimSpace(in.Wing),
		Room:          strings.TrimSpace(in.Room),
		Bed:           strings.TrimSpace(in.Bed),
	}

	readers := append(s.store.Readers(), reader)
	if err := s.store.ReplaceReaders(readers); err != nil {
		return entities.Reader{}, fmt.Errorf("persist readers: %w", err)
	}
	return reader, nil
}

// DeleteReader removes a reader unconditionally, with the same dangling
// loan-reference behavior as DeleteBook.
func (s *Service) DeleteReader(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	readers := s.store.Readers()
	next := readers[:0]
	for _, r := range readers {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(readers) {
		return ErrReaderNotFound
	}
	return s.store.ReplaceReaders(next)
}

// CreateLoan lends an available book to an existing reader until the given
// calendar date (YYYY-MM-DD). The operation validates availability itself
// rather than trusting the caller's book selection, so it can never produce
// two simultaneously active loans on one book.
func (s *Service) CreateLoan(bookID, readerID, dueDate string) (entities.Loan, error) {
	due, err := ParseDueDate(dueDate)
	if err != nil {
		return entities.Loan{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.store.Books()
	bookIdx := -1
	for i, b := range books {
		if b.ID == bookID {
			bookIdx = i
			break
		}
	}
	if bookIdx == -1 {
		return entities.Loan{}, ErrBookNotFound
	}
	if books[bookIdx].Status != entities.BookStatusAvailable {
		return entities.Loan{}, ErrBookUnavailable
	}

	readerExists := false
	for _, r := range s.store.Readers() {
		if r.ID == readerID {
			readerExists = true
			break
		}
	}
	if !readerExists {
		return entities.Loan{}, ErrReaderNotFound
	}

	loan := entities.Loan{
		ID:       uuid.NewString(),
		BookID:   bookID,
		ReaderID: readerID,
		LoanDate: s.now(),
		DueDate:  due,
		Status:   entities.LoanStatusActive,
	}

	books[bookIdx].Status = entities.BookStatusLoaned
	loans := append(s.store.Loans(), loan)

	if err := s.store.ReplaceAll(books, s.store.Readers(), loans); err != nil {
		return entities.Loan{}, fmt.Errorf("persist loan: %w", err)
	}
	return loan, nil
}

// ReturnLoan transitions an active loan to returned and flips the book back
// to available. Returning an already-returned loan is rejected, not
// silently repeated.
func (s *Service) ReturnLoan(id string) (entities.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans := s.store.Loans()
	loanIdx := -1
	for i, l := range loans {
		if l.ID == id {
			loanIdx = i
			break
		}
	}
	if loanIdx == -1 {
		return entities.Loan{}, ErrLoanNotFound
	}
	if !loans[loanIdx].Active() {
		return entities.Loan{}, ErrLoanAlreadyReturned
	}

	returnedAt := s.now()
	loans[loanIdx].Status = entities.LoanStatusReturned
	loans[loanIdx].ReturnDate = &returnedAt

	// The book may have been deleted while on loan; the dangling reference
	// stays on the loan record and there is nothing to flip back.
	books := s.store.Books()
	for i, b := range books {
		if b.ID == loans[loanIdx].BookID {
			books[i].Status = entities.BookStatusAvailable
			break
		}
	}

	if err := s.store.ReplaceAll(books, s.store.Readers(), loans); err != nil {
		return entities.Loan{}, fmt.Errorf("persist return: %w", err)
	}
	return loans[loanIdx], nil
}

// Book looks up a single book by id.
func (s *Service) Book(id string) (entities.Book, error) {
	for _, b := range s.store.Books() {
		if b.ID == id {
			return b, nil
		}
	}
	return entities.Book{}, ErrBookNotFound
}

// UpdateBookDetails fills in genre and description on a catalogued book.
// Used by background enrichment; blank arguments leave the field untouched.
func (s *Service) UpdateBookDetails(id, genre, description string) (entities.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.store.Books()
	for i, b := range books {
		if b.ID != id {
			continue
		}
		if strings.TrimSpace(genre) != "" {
			books[i].Genre = strings.TrimSpace(genre)
		}
		if strings.TrimSpace(description) != "" {
			books[i].Description = strings.TrimSpace(description)
		}
		if err := s.store.ReplaceBooks(books); err != nil {
			return entities.Book{}, fmt.Errorf("persist books: %w", err)
		}
		return books[i], nil
	}
	return entities.Book{}, ErrBookNotFound
}

// BooksMissingDetails lists catalogued books with neither genre nor
// description, the candidates for background enrichment.
func (s *Service) BooksMissingDetails() []entities.Book {
	var missing []entities.Book
	for _, b := range s.store.Books() {
		if b.Genre == "" && b.Description == "" {
			missing = append(missing, b)
		}
	}
	return missing
}
