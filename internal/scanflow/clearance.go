package scanflow

import "context"

// ClearanceSession accumulates scanned serials for a bulk confirm-to-OUT.
// Entries are ordered newest first and are NOT deduplicated: each scan of the
// same serial is its own entry, which is what the clearance floor expects when
// a tray is run through twice.
type ClearanceSession struct {
	validator Validator
	clearer   Clearer
	entries   []Entry
	page      int
}

func NewClearanceSession(v Validator, c Clearer) *ClearanceSession {
	return &ClearanceSession{validator: v, clearer: c, page: 1}
}

// Scan validates one serial and prepends the resulting entry. A serial that is
// blank after normalization is ignored. On a lookup error the session is left
// unchanged.
func (s *ClearanceSession) Scan(ctx context.Context, raw string) (*Entry, error) {
	serial := NormalizeSerial(raw)
	if serial == "" {
		return nil, nil
	}
	matches, err := lookup(ctx, s.validator, []string{serial})
	if err != nil {
		return nil, err
	}
	verdict, note := clearanceVerdict(matches[serial])
	e := newEntry(serial, matches[serial], verdict, note)
	s.entries = append([]Entry{e}, s.entries...)
	s.page = 1
	return &e, nil
}

// ImportRows validates a batch of serials in one round trip and prepends the
// whole batch, preserving input order. Blank rows are dropped first; a batch
// with nothing left is rejected.
func (s *ClearanceSession) ImportRows(ctx context.Context, rows []string) (int, error) {
	serials := normalizeBatch(rows)
	if len(serials) == 0 {
		return 0, ErrEmptyBatch
	}
	matches, err := lookup(ctx, s.validator, serials)
	if err != nil {
		return 0, err
	}
	batch := make([]Entry, 0, len(serials))
	for _, serial := range serials {
		verdict, note := clearanceVerdict(matches[serial])
		batch = append(batch, newEntry(serial, matches[serial], verdict, note))
	}
	s.entries = append(batch, s.entries...)
	s.page = 1
	return len(batch), nil
}

// ImportWorkbook imports the first column of an xlsx workbook's first sheet.
func (s *ClearanceSession) ImportWorkbook(ctx context.Context, src WorkbookSource) (int, error) {
	rows, err := readWorkbookColumn(src)
	if err != nil {
		return 0, err
	}
	return s.ImportRows(ctx, rows)
}

// Remove drops the entry with the given id. Reports whether one was removed.
func (s *ClearanceSession) Remove(id string) bool {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *ClearanceSession) ClearAll() {
	s.entries = nil
	s.page = 1
}

// CommitClearance confirms every OK entry's board as OUT in one call. Board
// ids are deduplicated before the commit. On success the session is wiped; on
// failure it is untouched.
func (s *ClearanceSession) CommitClearance(ctx context.Context) (int64, error) {
	seen := make(map[int64]struct{})
	ids := []int64{}
	for _, e := range s.entries {
		if e.Verdict != VerdictOK || e.Board == nil {
			continue
		}
		if _, dup := seen[e.Board.ID]; dup {
			continue
		}
		seen[e.Board.ID] = struct{}{}
		ids = append(ids, e.Board.ID)
	}
	if len(ids) == 0 {
		return 0, ErrNothingToCommit
	}
	n, err := s.clearer.ConfirmClear(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.entries = nil
	s.page = 1
	return n, nil
}

func (s *ClearanceSession) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *ClearanceSession) Counts() (ok, ng int) {
	for _, e := range s.entries {
		if e.Verdict == VerdictOK {
			ok++
		} else {
			ng++
		}
	}
	return
}

func (s *ClearanceSession) Page(n int) []Entry {
	s.page = n
	return paginate(s.entries, n)
}

func (s *ClearanceSession) CurrentPage() int { return s.page }
func (s *ClearanceSession) TotalPages() int  { return pageCount(len(s.entries)) }

func normalizeBatch(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if serial := NormalizeSerial(r); serial != "" {
			out = append(out, serial)
		}
	}
	return out
}
