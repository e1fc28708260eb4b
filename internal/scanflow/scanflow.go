// Package scanflow holds the operator-side state of the clearance, borrow and
// return workflows: scanned serials, their verdicts, and the bulk commit steps.
// It talks to the backend only through the small interfaces below, so the
// session logic is testable without a server.
package scanflow

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/width"
)

// PageSize is the fixed page length of the session entry lists.
const PageSize = 10

var (
	ErrEmptyBatch      = errors.New("import batch contains no serials")
	ErrNothingToCommit = errors.New("no eligible entries to commit")
	ErrDuplicateScan   = errors.New("serial already scanned")
	ErrNoBorrower      = errors.New("borrower not resolved")
	ErrNoReason        = errors.New("reason is required")
	ErrNotBorrowed     = errors.New("serial is not among the active loans")
)

// BoardInfo is the lookup result for one matched serial.
type BoardInfo struct {
	ID          int64
	Serial      string
	Model       string
	Customer    string
	Status      string
	CreatedDate string
}

// Validator resolves scanned serials against the board registry. The returned
// slice carries one element per matched board; unmatched serials are absent.
type Validator interface {
	ValidateSerials(ctx context.Context, serials []string) ([]BoardInfo, error)
}

// Clearer commits a clearance batch and reports rows actually transitioned.
type Clearer interface {
	ConfirmClear(ctx context.Context, ids []int64) (int64, error)
}

// SkippedSerial is a serial the server refused to lend, with the reason.
type SkippedSerial struct {
	Serial string
	Reason string
}

// BorrowOutcome is the server's answer to a borrow submission.
type BorrowOutcome struct {
	Borrowed int
	Skipped  []SkippedSerial
}

// Lender records loans for a borrow batch.
type Lender interface {
	Borrow(ctx context.Context, employeeID int64, serials []string, reason string) (*BorrowOutcome, error)
}

// LoanInfo is one active loan as shown on the return screen.
type LoanInfo struct {
	ID         int64
	Serial     string
	BorrowDate string
	RmaStatus  string
}

// LoanSource lists the open loans of a borrower.
type LoanSource interface {
	ActiveLoans(ctx context.Context, borrowerCode string) ([]LoanInfo, error)
}

// Returner closes the given loans and reports rows actually closed.
type Returner interface {
	ReturnLoans(ctx context.Context, loanIDs []int64) (int64, error)
}

// Borrower is the resolved employee a borrow session lends to.
type Borrower struct {
	ID         int64
	Code       string
	Name       string
	Department string
}

type Verdict string

const (
	VerdictOK Verdict = "OK"
	VerdictNG Verdict = "NG"
)

// Entry is one scanned or imported serial with its verdict.
type Entry struct {
	ID      string
	Serial  string
	Verdict Verdict
	Note    string
	Board   *BoardInfo
}

// NormalizeSerial folds full-width characters to their ASCII forms and trims
// surrounding whitespace. Handheld scanners emit full-width digits when the
// host IME is left in Japanese mode.
func NormalizeSerial(raw string) string {
	return strings.TrimSpace(width.Fold.String(raw))
}

const statusProcessing = "Processing"

func clearanceVerdict(b *BoardInfo) (Verdict, string) {
	switch {
	case b == nil:
		return VerdictNG, "Not Found"
	case b.Status == statusProcessing:
		return VerdictOK, ""
	case b.Status == "OUT":
		return VerdictNG, "Already OUT"
	default:
		return VerdictNG, "Status is " + b.Status
	}
}

func borrowVerdict(b *BoardInfo) (Verdict, string) {
	switch {
	case b == nil:
		return VerdictNG, "PID Not Found"
	case b.Status == statusProcessing:
		return VerdictOK, ""
	default:
		return VerdictNG, "Status is " + b.Status + " (Must be Processing)"
	}
}

func newEntry(serial string, b *BoardInfo, verdict Verdict, note string) Entry {
	return Entry{
		ID:      ulid.Make().String(),
		Serial:  serial,
		Verdict: verdict,
		Note:    note,
		Board:   b,
	}
}

// lookup runs one validator round trip and indexes the result by serial.
func lookup(ctx context.Context, v Validator, serials []string) (map[string]*BoardInfo, error) {
	boards, err := v.ValidateSerials(ctx, serials)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*BoardInfo, len(boards))
	for i := range boards {
		m[boards[i].Serial] = &boards[i]
	}
	return m, nil
}

func paginate(entries []Entry, page int) []Entry {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(entries) {
		return []Entry{}
	}
	end := start + PageSize
	if end > len(entries) {
		end = len(entries)
	}
	out := make([]Entry, end-start)
	copy(out, entries[start:end])
	return out
}

func pageCount(n int) int {
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}
