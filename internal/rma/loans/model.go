package loans

import (
	"database/sql"
	"time"
)

// Loan statuses. Rows are never deleted; a return flips BORROWED to RETURNED.
const (
	StatusBorrowed = "BORROWED"
	StatusReturned = "RETURNED"
)

// Loan is one row of rma_loans: one board borrowed by one employee.
type Loan struct {
	ID         int64
	RmaBoardID int64
	BorrowerID int64
	Reason     sql.NullString
	BorrowDate time.Time
	Status     string
	ReturnDate sql.NullTime
}
