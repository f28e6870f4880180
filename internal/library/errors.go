package library

import "errors"

// Validation rejections surfaced at the operation boundary. Callers map
// these onto their own error reporting (the HTTP layer turns them into
// 400/404/409 responses).
var (
	ErrTitleRequired  = errors.New("book title is required")
	ErrAuthorRequired = errors.New("book author is required")
	ErrNameRequired   = errors.New("reader name is required")
	ErrInvalidDueDate = errors.New("due date must be a calendar date in YYYY-MM-DD format")

	ErrBookNotFound   = errors.New("book not found")
	ErrReaderNotFound = errors.New("reader not found")
	ErrLoanNotFound   = errors.New("loan not found")

	ErrBookUnavailable     = errors.New("book is not available for loan")
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
)
