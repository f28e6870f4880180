package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/library"
)

func TestAvailableBooks(t *testing.T) {
	books := []entities.Book{
		{ID: "b1", Title: "One", Status: entities.BookStatusAvailable},
		{ID: "b2", Title: "Two", Status: entities.BookStatusLoaned},
		{ID: "b3", Title: "Three", Status: entities.BookStatusAvailable},
	}

	got := AvailableBooks(books)
	require.Len(t, got, 2)
	assert.Equal(t, "One", got[0].Title)
	assert.Equal(t, "Three", got[1].Title)
}

func TestGenreBreakdown(t *testing.T) {
	books := []entities.Book{
		{ID: "b1", Title: "First Fiction", Genre: "Fiction"},
		{ID: "b2", Title: "No Genre"},
		{ID: "b3", Title: "A Poem", Genre: "Poetry"},
		{ID: "b4", Title: "Second Fiction", Genre: "Fiction"},
	}

	groups := GenreBreakdown(books)
	require.Len(t, groups, 3)

	// Groups appear in first-seen order, never alphabetically
	assert.Equal(t, "Fiction", groups[0].Genre)
	assert.Equal(t, UncategorizedGenre, groups[1].Genre)
	assert.Equal(t, "Poetry", groups[2].Genre)

	require.Len(t, groups[0].Books, 2)
	assert.Equal(t, "First Fiction", groups[0].Books[0].Title)
	assert.Equal(t, "Second Fiction", groups[0].Books[1].Title)
	assert.Equal(t, "No Genre", groups[1].Books[0].Title)
}

func TestGenreBreakdown_Empty(t *testing.T) {
	assert.Empty(t, GenreBreakdown(nil))
}

func TestScheduledReturns(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	returnDate := time.Date(2024, 6, 9, 10, 0, 0, 0, time.Local)

	loans := []entities.Loan{
		{ID: "l1", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(day)},
		{ID: "l2", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(day.AddDate(0, 0, 1))},
		{ID: "l3", Status: entities.LoanStatusReturned, ReturnDate: &returnDate, DueDate: library.NormalizeDueDate(day)},
	}

	due := ScheduledReturns(loans, day)
	require.Len(t, due, 1)
	assert.Equal(t, "l1", due[0].ID)
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	returnDate := now.AddDate(0, 0, -2)

	books := []entities.Book{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}}
	readers := []entities.Reader{{ID: "r1"}, {ID: "r2"}}
	loans := []entities.Loan{
		{ID: "l1", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(now.AddDate(0, 0, 5))},
		{ID: "l2", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(now.AddDate(0, 0, -3))},
		{ID: "l3", Status: entities.LoanStatusReturned, ReturnDate: &returnDate, DueDate: library.NormalizeDueDate(now.AddDate(0, 0, -3))},
	}

	stats := Dashboard(books, readers, loans, now)

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 2, stats.TotalReaders)
	// Overdue loans are still outstanding, so they count as active too
	assert.Equal(t, 2, stats.ActiveLoans)
	assert.Equal(t, 1, stats.OverdueLoans)
}

func TestResolveLoans(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	books := []entities.Book{{ID: "b1", Title: "Dom Casmurro"}}
	readers := []entities.Reader{{ID: "r1", Name: "Ana"}}
	loans := []entities.Loan{
		{ID: "l1", BookID: "b1", ReaderID: "r1", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(now.AddDate(0, 0, -1))},
		{ID: "l2", BookID: "deleted-book", ReaderID: "deleted-reader", Status: entities.LoanStatusActive, DueDate: library.NormalizeDueDate(now.AddDate(0, 0, 3))},
	}

	views := ResolveLoans(loans, books, readers, now)
	require.Len(t, views, 2)

	assert.Equal(t, "Dom Casmurro", views[0].BookTitle)
	assert.Equal(t, "Ana", views[0].ReaderName)
	assert.Equal(t, entities.LoanStatusOverdue, views[0].DisplayStatus)

	// Dangling references show a placeholder instead of failing
	assert.Equal(t, RemovedPlaceholder, views[1].BookTitle)
	assert.Equal(t, RemovedPlaceholder, views[1].ReaderName)
	assert.Equal(t, entities.LoanStatusActive, views[1].DisplayStatus)
}

func TestRecentLoans(t *testing.T) {
	loans := []entities.Loan{{ID: "l1"}, {ID: "l2"}, {ID: "l3"}}

	got := RecentLoans(loans, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "l3", got[0].ID)
	assert.Equal(t, "l2", got[1].ID)

	// Asking for more than exists returns everything, newest first
	all := RecentLoans(loans, 10)
	require.Len(t, all, 3)
	assert.Equal(t, "l3", all[0].ID)
	assert.Equal(t, "l1", all[2].ID)
}

func TestSearchBooks(t *testing.T) {
	books := []entities.Book{
		{ID: "b1", Title: "Dom Casmurro", Author: "Machado de Assis", ISBN: "978-85-359-0277-5"},
		{ID: "b2", Title: "Grande Sertão", Author: "Guimarães Rosa"},
	}

	byTitle := SearchBooks(books, "casmurro")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "b1", byTitle[0].ID)

	byAuthor := SearchBooks(books, "ROSA")
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "b2", byAuthor[0].ID)

	byISBN := SearchBooks(books, "0277")
	require.Len(t, byISBN, 1)
	assert.Equal(t, "b1", byISBN[0].ID)

	assert.Len(t, SearchBooks(books, ""), 2)
	assert.Empty(t, SearchBooks(books, "no such thing"))
}

func TestSearchReaders(t *testing.T) {
	readers := []entities.Reader{
		{ID: "r1", Name: "Maria Fernandes", Sector: "Cardiology"},
		{ID: "r2", Name: "João Pereira", Sector: "Pediatrics"},
	}

	byName := SearchReaders(readers, "maria")
	require.Len(t, byName, 1)
	assert.Equal(t, "r1", byName[0].ID)

	bySector := SearchReaders(readers, "pediatrics")
	require.Len(t, bySector, 1)
	assert.Equal(t, "r2", bySector[0].ID)
}
