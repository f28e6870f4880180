package library

import (
	"time"

	"github.com/bibliosmart/bibliosmart/internal/entities"
)

// DeriveLoanDisplayStatus computes the status to display for a loan at the
// given evaluation time. The result is never written back to the loan:
// stored loans only ever hold active or returned, and overdue is always
// recomputed against the current clock.
//
// A loan is overdue once its due date lies before the start of the current
// local calendar day, so a loan due yesterday is overdue all of today
// regardless of the hour.
func DeriveLoanDisplayStatus(loan entities.Loan, now time.Time) entities.LoanStatus {
	if loan.Status == entities.LoanStatusReturned {
		return entities.LoanStatusReturned
	}
	if loan.DueDate.Before(StartOfDay(now)) {
		return entities.LoanStatusOverdue
	}
	return entities.LoanStatusActive
}
