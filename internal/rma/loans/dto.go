package loans

type BorrowRequest struct {
	EmployeeID int64    `json:"employeeId"`
	PIDs       []string `json:"pids"`
	Reason     string   `json:"reason"`
}

// SkippedSerial reports a serial the borrow transaction did not persist and
// why. The legacy behavior was to drop these silently, which left the
// operator believing more boards were loaned out than actually were.
type SkippedSerial struct {
	Serial string `json:"serial"`
	Reason string `json:"reason"`
}

const (
	SkipNotFound        = "not found"
	SkipAlreadyBorrowed = "already borrowed"
)

type BorrowResponse struct {
	Success  bool            `json:"success"`
	Borrowed int             `json:"borrowed"`
	Skipped  []SkippedSerial `json:"skipped"`
}

// ActiveLoanRow is one outstanding loan for the return screen.
type ActiveLoanRow struct {
	ID         int64  `json:"id"`
	PID        string `json:"pid"`
	BorrowDate string `json:"borrow_date"`
	Status     string `json:"status"`
	RmaStatus  string `json:"rma_status"`
}

type ReturnRequest struct {
	LoanIDs []int64 `json:"loanIds"`
}

type ReturnResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
