// Package reports computes read-only projections over the current
// collection state. Nothing here mutates or persists anything; every
// report is recomputed per request.
package reports

import (
	"strings"
	"time"

	"github.com/bibliosmart/bibliosmart/internal/entities"
	"github.com/bibliosmart/bibliosmart/internal/library"
)

// UncategorizedGenre is the sentinel group label for books without a genre.
const UncategorizedGenre = "Uncategorized"

// RemovedPlaceholder stands in for a book or reader that was deleted while
// still referenced by a loan record.
const RemovedPlaceholder = "Removed"

// AvailableBooks filters the catalogue down to books that can be loaned
// right now.
func AvailableBooks(books []entities.Book) []entities.Book {
	available := make([]entities.Book, 0)
	for _, b := range books {
		if b.Status == entities.BookStatusAvailable {
			available = append(available, b)
		}
	}
	return available
}

// GenreGroup is one genre bucket of the catalogue breakdown.
type GenreGroup struct {
	Genre string          `json:"genre"`
	Books []entities.Book `json:"books"`
}

// GenreBreakdown groups the catalogue by genre. Groups appear in
// first-seen order of the source collection, not alphabetically, and books
// keep their collection order within each group. Empty genres fall into
// the Uncategorized group.
func GenreBreakdown(books []entities.Book) []GenreGroup {
	index := make(map[string]int)
	groups := make([]GenreGroup, 0)

	for _, b := range books {
		genre := b.Genre
		if genre == "" {
			genre = UncategorizedGenre
		}
		i, seen := index[genre]
		if !seen {
			i = len(groups)
			index[genre] = i
			groups = append(groups, GenreGroup{Genre: genre})
		}
		groups[i].Books = append(groups[i].Books, b)
	}
	return groups
}

// ScheduledReturns lists active loans due on the given local calendar day.
// This is a day-equality check, unlike the overdue check which orders
// against start of day; both extract days the same way.
func ScheduledReturns(loans []entities.Loan, day time.Time) []entities.Loan {
	due := make([]entities.Loan, 0)
	for _, l := range loans {
		if l.Active() && library.SameCalendarDay(l.DueDate, day) {
			due = append(due, l)
		}
	}
	return due
}

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalBooks   int `json:"totalBooks"`
	TotalReaders int `json:"totalReaders"`
	ActiveLoans  int `json:"activeLoans"`
	OverdueLoans int `json:"overdueLoans"`
}

// Dashboard computes the aggregate counters at the given evaluation time.
func Dashboard(books []entities.Book, readers []entities.Reader, loans []entities.Loan, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalBooks:   len(books),
		TotalReaders: len(readers),
	}
	for _, l := range loans {
		switch library.DeriveLoanDisplayStatus(l, now) {
		case entities.LoanStatusActive:
			stats.ActiveLoans++
		case entities.LoanStatusOverdue:
			stats.ActiveLoans++
			stats.OverdueLoans++
		}
	}
	return stats
}

// LoanView is a loan row decorated for display: referenced entities
// resolved to names and the status derived for the evaluation time.
type LoanView struct {
	entities.Loan
	BookTitle     string              `json:"bookTitle"`
	ReaderName    string              `json:"readerName"`
	DisplayStatus entities.LoanStatus `json:"displayStatus"`
}

// ResolveLoans decorates loans with book titles, reader names, and derived
// display status, preserving the given loan order. Dangling references
// resolve to the removed placeholder.
func ResolveLoans(loans []entities.Loan, books []entities.Book, readers []entities.Reader, now time.Time) []LoanView {
	titles := make(map[string]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}
	names := make(map[string]string, len(readers))
	for _, r := range readers {
		names[r.ID] = r.Name
	}

	views := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		view := LoanView{
			Loan:          l,
			BookTitle:     titles[l.BookID],
			ReaderName:    names[l.ReaderID],
			DisplayStatus: library.DeriveLoanDisplayStatus(l, now),
		}
		if view.BookTitle == "" {
			view.BookTitle = RemovedPlaceholder
		}
		if view.ReaderName == "" {
			view.ReaderName = RemovedPlaceholder
		}
		views = append(views, view)
	}
	return views
}

// RecentLoans returns up to n of the most recently created loans, newest
// first. The loan collection is append-only, so collection order is
// creation order.
func RecentLoans(loans []entities.Loan, n int) []entities.Loan {
	return lastReversed(loans, n)
}

// RecentReaders returns up to n of the most recently registered readers,
// newest first.
func RecentReaders(readers []entities.Reader, n int) []entities.Reader {
	return lastReversed(readers, n)
}

func lastReversed[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}

// SearchBooks filters the catalogue by a case-insensitive substring match
// over title, author, and ISBN. An empty query returns everything.
func SearchBooks(books []entities.Book, query string) []entities.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return books
	}
	matched := make([]entities.Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.Author), query) ||
			strings.Contains(strings.ToLower(b.ISBN), query) {
			matched = append(matched, b)
		}
	}
	return matched
}

// SearchReaders filters readers by a case-insensitive substring match over
// name and sector. An empty query returns everything.
func SearchReaders(readers []entities.Reader, query string) []entities.Reader {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return readers
	}
	matched := make([]entities.Reader, 0)
	for _, r := range readers {
		if strings.Contains(strings.ToLower(r.Name), query) ||
			strings.Contains(strings.ToLower(r.Sector), query) {
			matched = append(matched, r)
		}
	}
	return matched
}
