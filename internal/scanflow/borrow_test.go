package scanflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowSession_ScanVerdicts(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{
		"P-OK":  processingBoard(1, "P-OK"),
		"P-OUT": {ID: 2, Serial: "P-OUT", Status: "OUT"},
	}}
	s := NewBorrowSession(v, &fakeLender{})
	ctx := context.Background()

	e, err := s.Scan(ctx, "P-OK")
	require.NoError(t, err)
	assert.Equal(t, VerdictOK, e.Verdict)

	e, err = s.Scan(ctx, "P-OUT")
	require.NoError(t, err)
	assert.Equal(t, VerdictNG, e.Verdict)
	assert.Equal(t, "Status is OUT (Must be Processing)", e.Note)

	e, err = s.Scan(ctx, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, VerdictNG, e.Verdict)
	assert.Equal(t, "PID Not Found", e.Note)
}

func TestBorrowSession_DuplicateScanIsNoOp(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(1, "P1")}}
	s := NewBorrowSession(v, &fakeLender{})
	ctx := context.Background()

	_, err := s.Scan(ctx, "P1")
	require.NoError(t, err)

	_, err = s.Scan(ctx, "P1")
	assert.ErrorIs(t, err, ErrDuplicateScan)
	assert.Len(t, s.Entries(), 1)
	assert.Equal(t, 1, v.calls)

	// normalization happens before the dedupe check
	_, err = s.Scan(ctx, " Ｐ１ ")
	assert.ErrorIs(t, err, ErrDuplicateScan)
}

func TestBorrowSession_RemoveFreesSerial(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(1, "P1")}}
	s := NewBorrowSession(v, &fakeLender{})
	ctx := context.Background()

	e, err := s.Scan(ctx, "P1")
	require.NoError(t, err)
	require.True(t, s.Remove(e.ID))

	_, err = s.Scan(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 1)
}

func TestBorrowSession_ImportSkipsDuplicates(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{
		"A": processingBoard(1, "A"),
		"B": processingBoard(2, "B"),
	}}
	s := NewBorrowSession(v, &fakeLender{})
	ctx := context.Background()

	_, err := s.Scan(ctx, "A")
	require.NoError(t, err)

	n, err := s.ImportRows(ctx, []string{"A", "B", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.Entries(), 3)
}

func TestBorrowSession_SubmitPreconditions(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(1, "P1")}}
	ctx := context.Background()

	t.Run("borrower required", func(t *testing.T) {
		s := NewBorrowSession(v, &fakeLender{})
		_, err := s.Submit(ctx)
		assert.ErrorIs(t, err, ErrNoBorrower)
	})

	t.Run("reason required", func(t *testing.T) {
		s := NewBorrowSession(v, &fakeLender{})
		s.SetBorrower(Borrower{ID: 7, Code: "E-7"})
		s.SetReason("   ")
		_, err := s.Submit(ctx)
		assert.ErrorIs(t, err, ErrNoReason)
	})

	t.Run("at least one OK entry", func(t *testing.T) {
		s := NewBorrowSession(v, &fakeLender{})
		s.SetBorrower(Borrower{ID: 7, Code: "E-7"})
		s.SetReason("debug")
		_, _ = s.Scan(ctx, "NOPE")
		_, err := s.Submit(ctx)
		assert.ErrorIs(t, err, ErrNothingToCommit)
	})
}

func TestBorrowSession_Submit(t *testing.T) {
	ctx := context.Background()
	v := &fakeValidator{boards: map[string]BoardInfo{
		"P1": processingBoard(1, "P1"),
		"P2": processingBoard(2, "P2"),
	}}

	t.Run("success clears entries and reason, keeps borrower", func(t *testing.T) {
		l := &fakeLender{out: &BorrowOutcome{
			Borrowed: 1,
			Skipped:  []SkippedSerial{{Serial: "P2", Reason: "already borrowed"}},
		}}
		s := NewBorrowSession(v, l)
		s.SetBorrower(Borrower{ID: 7, Code: "E-7", Name: "Tran"})
		s.SetReason("failure analysis")
		_, _ = s.Scan(ctx, "P1")
		_, _ = s.Scan(ctx, "P2")
		_, _ = s.Scan(ctx, "NOPE")

		out, err := s.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), l.gotEmployee)
		assert.Equal(t, "failure analysis", l.gotReason)
		assert.ElementsMatch(t, []string{"P1", "P2"}, l.gotSerials)
		assert.Equal(t, 1, out.Borrowed)
		require.Len(t, out.Skipped, 1)
		assert.Equal(t, "already borrowed", out.Skipped[0].Reason)

		assert.Empty(t, s.Entries())
		assert.Empty(t, s.Reason())
		require.NotNil(t, s.Borrower())
		assert.Equal(t, "E-7", s.Borrower().Code)

		// serials are scannable again after the batch went through
		_, err = s.Scan(ctx, "P1")
		assert.NoError(t, err)
	})

	t.Run("failure leaves session untouched", func(t *testing.T) {
		l := &fakeLender{err: errBackend}
		s := NewBorrowSession(v, l)
		s.SetBorrower(Borrower{ID: 7})
		s.SetReason("debug")
		_, _ = s.Scan(ctx, "P1")

		_, err := s.Submit(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.Len(t, s.Entries(), 1)
		assert.Equal(t, "debug", s.Reason())
	})
}
