package scanflow

import (
	"context"
	"strings"
)

// BorrowSession accumulates serials to lend to one borrower. Unlike clearance,
// scanning the same serial twice is a no-op: a loan batch lists each board at
// most once.
type BorrowSession struct {
	validator Validator
	lender    Lender
	borrower  *Borrower
	reason    string
	entries   []Entry
	seen      map[string]struct{}
	page      int
}

func NewBorrowSession(v Validator, l Lender) *BorrowSession {
	return &BorrowSession{validator: v, lender: l, seen: map[string]struct{}{}, page: 1}
}

func (s *BorrowSession) SetBorrower(b Borrower) { s.borrower = &b }
func (s *BorrowSession) Borrower() *Borrower    { return s.borrower }
func (s *BorrowSession) SetReason(r string)     { s.reason = r }
func (s *BorrowSession) Reason() string         { return s.reason }

// Scan validates one serial and prepends the entry. A repeat of an already
// scanned serial returns ErrDuplicateScan and changes nothing.
func (s *BorrowSession) Scan(ctx context.Context, raw string) (*Entry, error) {
	serial := NormalizeSerial(raw)
	if serial == "" {
		return nil, nil
	}
	if _, dup := s.seen[serial]; dup {
		return nil, ErrDuplicateScan
	}
	matches, err := lookup(ctx, s.validator, []string{serial})
	if err != nil {
		return nil, err
	}
	verdict, note := borrowVerdict(matches[serial])
	e := newEntry(serial, matches[serial], verdict, note)
	s.entries = append([]Entry{e}, s.entries...)
	s.seen[serial] = struct{}{}
	s.page = 1
	return &e, nil
}

// ImportRows behaves like the clearance import except that serials already in
// the session, or repeated within the batch, are silently dropped.
func (s *BorrowSession) ImportRows(ctx context.Context, rows []string) (int, error) {
	all := normalizeBatch(rows)
	if len(all) == 0 {
		return 0, ErrEmptyBatch
	}
	serials := make([]string, 0, len(all))
	batchSeen := make(map[string]struct{}, len(all))
	for _, serial := range all {
		if _, dup := s.seen[serial]; dup {
			continue
		}
		if _, dup := batchSeen[serial]; dup {
			continue
		}
		batchSeen[serial] = struct{}{}
		serials = append(serials, serial)
	}
	if len(serials) == 0 {
		return 0, nil
	}
	matches, err := lookup(ctx, s.validator, serials)
	if err != nil {
		return 0, err
	}
	batch := make([]Entry, 0, len(serials))
	for _, serial := range serials {
		verdict, note := borrowVerdict(matches[serial])
		batch = append(batch, newEntry(serial, matches[serial], verdict, note))
	}
	s.entries = append(batch, s.entries...)
	for _, serial := range serials {
		s.seen[serial] = struct{}{}
	}
	s.page = 1
	return len(batch), nil
}

func (s *BorrowSession) ImportWorkbook(ctx context.Context, src WorkbookSource) (int, error) {
	rows, err := readWorkbookColumn(src)
	if err != nil {
		return 0, err
	}
	return s.ImportRows(ctx, rows)
}

func (s *BorrowSession) Remove(id string) bool {
	for i := range s.entries {
		if s.entries[i].ID == id {
			delete(s.seen, s.entries[i].Serial)
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *BorrowSession) ClearAll() {
	s.entries = nil
	s.seen = map[string]struct{}{}
	s.page = 1
}

// Submit lends every OK entry to the borrower. Preconditions are checked
// locally; serials the server still refuses come back in the outcome. On
// success the entries and reason are cleared, the borrower stays.
func (s *BorrowSession) Submit(ctx context.Context) (*BorrowOutcome, error) {
	if s.borrower == nil {
		return nil, ErrNoBorrower
	}
	if strings.TrimSpace(s.reason) == "" {
		return nil, ErrNoReason
	}
	serials := []string{}
	for _, e := range s.entries {
		if e.Verdict == VerdictOK {
			serials = append(serials, e.Serial)
		}
	}
	if len(serials) == 0 {
		return nil, ErrNothingToCommit
	}
	out, err := s.lender.Borrow(ctx, s.borrower.ID, serials, s.reason)
	if err != nil {
		return nil, err
	}
	s.entries = nil
	s.seen = map[string]struct{}{}
	s.reason = ""
	s.page = 1
	return out, nil
}

func (s *BorrowSession) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *BorrowSession) Counts() (ok, ng int) {
	for _, e := range s.entries {
		if e.Verdict == VerdictOK {
			ok++
		} else {
			ng++
		}
	}
	return
}

func (s *BorrowSession) Page(n int) []Entry {
	s.page = n
	return paginate(s.entries, n)
}

func (s *BorrowSession) CurrentPage() int { return s.page }
func (s *BorrowSession) TotalPages() int  { return pageCount(len(s.entries)) }
