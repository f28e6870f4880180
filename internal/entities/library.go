package entities

import (
	"time"
)

type BookStatus string

const (
	BookStatusAvailable BookStatus = "available"
	BookStatusLoaned    BookStatus = "loaned"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"

	// LoanStatusOverdue is a display-only status. It is computed from the
	// due date at read time and never written to a stored loan.
	LoanStatusOverdue LoanStatus = "overdue"
)

// Book is a single physical book in the hospital collection.
//
// JSON tags use the persisted blob field names (camelCase), so collections
// exported by earlier versions of the application remain readable.
type Book struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn,omitempty"`
	Genre       string     `json:"genre,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      BookStatus `json:"status"`
}

// Reader is a registered patient who can borrow books. The location fields
// (sector, wing, room, bed) are free text supplied by the operator.
type Reader struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	JoinedAt      time.Time  `json:"joinedAt"`
	AdmissionDate *time.Time `json:"admissionDate,omitempty"`
	Sector        string     `json:"sector,omitempty"`
	Wing          string     `json:"wing,omitempty"`
	Room          string     `json:"room,omitempty"`
	Bed           string     `json:"bed,omitempty"`
}

// Loan links a book to a reader. Loans are never deleted; a returned loan
// keeps its record with ReturnDate set. BookID and ReaderID may dangle if
// the referenced entity was deleted afterwards.
type Loan struct {
	ID         string     `json:"id"`
	BookID     string     `json:"bookId"`
	ReaderID   string     `json:"readerId"`
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     LoanStatus `json:"status"`
}

// Active reports whether the loan has not been returned yet.
func (l Loan) Active() bool {
	return l.Status == LoanStatusActive
}
