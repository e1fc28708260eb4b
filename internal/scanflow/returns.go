package scanflow

import (
	"context"
	"fmt"
)

// ReturnSession tracks which of a borrower's active loans have been scanned
// back in. Serials outside the loaded loan set are rejected at scan time so a
// stray board cannot slip into the confirmation.
type ReturnSession struct {
	loans    LoanSource
	returner Returner

	borrowerCode string
	active       []LoanInfo
	bySerial     map[string]int64
	scanned      map[string]struct{}
}

func NewReturnSession(src LoanSource, r Returner) *ReturnSession {
	return &ReturnSession{loans: src, returner: r, scanned: map[string]struct{}{}}
}

// LoadBorrower fetches the borrower's open loans, replacing any previously
// loaded set and discarding scans made against it.
func (s *ReturnSession) LoadBorrower(ctx context.Context, code string) error {
	active, err := s.loans.ActiveLoans(ctx, code)
	if err != nil {
		return err
	}
	s.borrowerCode = code
	s.active = active
	s.bySerial = make(map[string]int64, len(active))
	for _, l := range active {
		s.bySerial[l.Serial] = l.ID
	}
	s.scanned = map[string]struct{}{}
	return nil
}

// ScanReturn marks one loan as scanned. Serials not among the active loans
// return ErrNotBorrowed; repeats of an already scanned serial are no-ops.
func (s *ReturnSession) ScanReturn(raw string) error {
	serial := NormalizeSerial(raw)
	if serial == "" {
		return nil
	}
	if _, ok := s.bySerial[serial]; !ok {
		return ErrNotBorrowed
	}
	s.scanned[serial] = struct{}{}
	return nil
}

func (s *ReturnSession) ActiveLoans() []LoanInfo {
	out := make([]LoanInfo, len(s.active))
	copy(out, s.active)
	return out
}

func (s *ReturnSession) IsScanned(serial string) bool {
	_, ok := s.scanned[NormalizeSerial(serial)]
	return ok
}

func (s *ReturnSession) ScannedCount() int { return len(s.scanned) }

// ConfirmReturn closes every scanned loan in one call, then reloads the
// borrower's active loans from the source instead of patching the local set.
// A failed return leaves the session untouched.
func (s *ReturnSession) ConfirmReturn(ctx context.Context) (int64, error) {
	if len(s.scanned) == 0 {
		return 0, ErrNothingToCommit
	}
	ids := make([]int64, 0, len(s.scanned))
	for _, l := range s.active {
		if _, ok := s.scanned[l.Serial]; ok {
			ids = append(ids, l.ID)
		}
	}
	n, err := s.returner.ReturnLoans(ctx, ids)
	if err != nil {
		return 0, err
	}
	if err := s.LoadBorrower(ctx, s.borrowerCode); err != nil {
		return n, fmt.Errorf("reload active loans: %w", err)
	}
	return n, nil
}
