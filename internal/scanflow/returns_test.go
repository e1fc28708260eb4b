package scanflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeLoanFixture() map[string][]LoanInfo {
	return map[string][]LoanInfo{
		"E-7": {
			{ID: 100, Serial: "P1", BorrowDate: "2026-08-01", RmaStatus: "Processing"},
			{ID: 101, Serial: "P2", BorrowDate: "2026-08-02", RmaStatus: "Processing"},
		},
	}
}

func TestReturnSession_LoadBorrower(t *testing.T) {
	src := &fakeLoanSource{loans: activeLoanFixture()}
	s := NewReturnSession(src, &fakeReturner{})
	ctx := context.Background()

	require.NoError(t, s.LoadBorrower(ctx, "E-7"))
	assert.Len(t, s.ActiveLoans(), 2)

	require.NoError(t, s.ScanReturn("P1"))
	assert.Equal(t, 1, s.ScannedCount())

	// reloading a different borrower discards pending scans
	require.NoError(t, s.LoadBorrower(ctx, "E-9"))
	assert.Empty(t, s.ActiveLoans())
	assert.Zero(t, s.ScannedCount())
}

func TestReturnSession_ScanGuard(t *testing.T) {
	src := &fakeLoanSource{loans: activeLoanFixture()}
	s := NewReturnSession(src, &fakeReturner{})
	require.NoError(t, s.LoadBorrower(context.Background(), "E-7"))

	assert.ErrorIs(t, s.ScanReturn("STRAY"), ErrNotBorrowed)
	assert.Zero(t, s.ScannedCount())

	require.NoError(t, s.ScanReturn("P1"))
	require.NoError(t, s.ScanReturn(" Ｐ１ "))
	assert.Equal(t, 1, s.ScannedCount())
	assert.True(t, s.IsScanned("P1"))
	assert.False(t, s.IsScanned("P2"))

	assert.NoError(t, s.ScanReturn("  "))
	assert.Equal(t, 1, s.ScannedCount())
}

func TestReturnSession_ConfirmReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("maps serials to loan ids and refetches", func(t *testing.T) {
		src := &fakeLoanSource{loans: activeLoanFixture()}
		r := &fakeReturner{ret: 2}
		s := NewReturnSession(src, r)
		require.NoError(t, s.LoadBorrower(ctx, "E-7"))
		require.NoError(t, s.ScanReturn("P1"))
		require.NoError(t, s.ScanReturn("P2"))

		src.loans["E-7"] = nil

		n, err := s.ConfirmReturn(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.ElementsMatch(t, []int64{100, 101}, r.gotIDs)
		assert.Equal(t, 2, src.calls)
		assert.Empty(t, s.ActiveLoans())
		assert.Zero(t, s.ScannedCount())
	})

	t.Run("nothing scanned", func(t *testing.T) {
		src := &fakeLoanSource{loans: activeLoanFixture()}
		s := NewReturnSession(src, &fakeReturner{})
		require.NoError(t, s.LoadBorrower(ctx, "E-7"))

		_, err := s.ConfirmReturn(ctx)
		assert.ErrorIs(t, err, ErrNothingToCommit)
	})

	t.Run("failed return leaves session untouched", func(t *testing.T) {
		src := &fakeLoanSource{loans: activeLoanFixture()}
		r := &fakeReturner{err: errBackend}
		s := NewReturnSession(src, r)
		require.NoError(t, s.LoadBorrower(ctx, "E-7"))
		require.NoError(t, s.ScanReturn("P1"))

		_, err := s.ConfirmReturn(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.Equal(t, 1, s.ScannedCount())
		assert.Len(t, s.ActiveLoans(), 2)
	})
}
