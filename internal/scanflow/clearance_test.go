package scanflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearanceSession_ScanVerdicts(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{
		"P-OK":  processingBoard(1, "P-OK"),
		"P-OUT": {ID: 2, Serial: "P-OUT", Status: "OUT"},
		"P-IN":  {ID: 3, Serial: "P-IN", Status: "IN"},
	}}
	s := NewClearanceSession(v, &fakeClearer{})
	ctx := context.Background()

	t.Run("Processing is OK", func(t *testing.T) {
		e, err := s.Scan(ctx, "P-OK")
		require.NoError(t, err)
		assert.Equal(t, VerdictOK, e.Verdict)
		require.NotNil(t, e.Board)
		assert.Equal(t, int64(1), e.Board.ID)
	})

	t.Run("OUT is already out", func(t *testing.T) {
		e, err := s.Scan(ctx, "P-OUT")
		require.NoError(t, err)
		assert.Equal(t, VerdictNG, e.Verdict)
		assert.Equal(t, "Already OUT", e.Note)
	})

	t.Run("unknown serial", func(t *testing.T) {
		e, err := s.Scan(ctx, "NOPE")
		require.NoError(t, err)
		assert.Equal(t, VerdictNG, e.Verdict)
		assert.Equal(t, "Not Found", e.Note)
		assert.Nil(t, e.Board)
	})

	t.Run("other status named in note", func(t *testing.T) {
		e, err := s.Scan(ctx, "P-IN")
		require.NoError(t, err)
		assert.Equal(t, VerdictNG, e.Verdict)
		assert.Equal(t, "Status is IN", e.Note)
	})
}

func TestClearanceSession_ScanNormalizesInput(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"PID123": processingBoard(1, "PID123")}}
	s := NewClearanceSession(v, &fakeClearer{})

	e, err := s.Scan(context.Background(), " ＰＩＤ１２３ ")
	require.NoError(t, err)
	assert.Equal(t, "PID123", e.Serial)
	assert.Equal(t, VerdictOK, e.Verdict)
}

func TestClearanceSession_BlankScanIsNoOp(t *testing.T) {
	v := &fakeValidator{}
	s := NewClearanceSession(v, &fakeClearer{})

	e, err := s.Scan(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.Empty(t, s.Entries())
	assert.Zero(t, v.calls)
}

func TestClearanceSession_DuplicatesKept(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(1, "P1")}}
	s := NewClearanceSession(v, &fakeClearer{})
	ctx := context.Background()

	_, err := s.Scan(ctx, "P1")
	require.NoError(t, err)
	_, err = s.Scan(ctx, "P1")
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestClearanceSession_NewestFirst(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{
		"P1": processingBoard(1, "P1"),
		"P2": processingBoard(2, "P2"),
	}}
	s := NewClearanceSession(v, &fakeClearer{})
	ctx := context.Background()

	_, _ = s.Scan(ctx, "P1")
	_, _ = s.Scan(ctx, "P2")

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "P2", entries[0].Serial)
	assert.Equal(t, "P1", entries[1].Serial)
}

func TestClearanceSession_ImportRows(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{
		"A": processingBoard(1, "A"),
		"B": processingBoard(2, "B"),
	}}
	s := NewClearanceSession(v, &fakeClearer{})
	ctx := context.Background()

	_, err := s.Scan(ctx, "A")
	require.NoError(t, err)
	v.calls = 0

	n, err := s.ImportRows(ctx, []string{"A", "", "B", "  ", "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, v.calls)

	entries := s.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, []string{"A", "B", "C", "A"}, []string{
		entries[0].Serial, entries[1].Serial, entries[2].Serial, entries[3].Serial,
	})
	assert.Equal(t, VerdictNG, entries[2].Verdict)
}

func TestClearanceSession_ImportRejectsEmptyBatch(t *testing.T) {
	v := &fakeValidator{}
	s := NewClearanceSession(v, &fakeClearer{})

	_, err := s.ImportRows(context.Background(), []string{"", "   ", "　"})
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Zero(t, v.calls)
}

func TestClearanceSession_Remove(t *testing.T) {
	v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(1, "P1")}}
	s := NewClearanceSession(v, &fakeClearer{})

	e, err := s.Scan(context.Background(), "P1")
	require.NoError(t, err)

	assert.False(t, s.Remove("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.True(t, s.Remove(e.ID))
	assert.Empty(t, s.Entries())
}

func TestClearanceSession_CommitClearance(t *testing.T) {
	ctx := context.Background()

	t.Run("commits distinct OK board ids and wipes", func(t *testing.T) {
		v := &fakeValidator{boards: map[string]BoardInfo{
			"P1": processingBoard(10, "P1"),
			"P2": processingBoard(20, "P2"),
		}}
		c := &fakeClearer{ret: 2}
		s := NewClearanceSession(v, c)

		_, _ = s.Scan(ctx, "P1")
		_, _ = s.Scan(ctx, "P1")
		_, _ = s.Scan(ctx, "P2")
		_, _ = s.Scan(ctx, "NOPE")

		n, err := s.CommitClearance(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.ElementsMatch(t, []int64{10, 20}, c.gotIDs)
		assert.Empty(t, s.Entries())
		assert.Equal(t, 1, s.CurrentPage())
	})

	t.Run("nothing eligible", func(t *testing.T) {
		v := &fakeValidator{}
		c := &fakeClearer{}
		s := NewClearanceSession(v, c)
		_, _ = s.Scan(ctx, "NOPE")

		_, err := s.CommitClearance(ctx)
		assert.ErrorIs(t, err, ErrNothingToCommit)
		assert.Zero(t, c.calls)
		assert.Len(t, s.Entries(), 1)
	})

	t.Run("failed commit leaves session untouched", func(t *testing.T) {
		v := &fakeValidator{boards: map[string]BoardInfo{"P1": processingBoard(10, "P1")}}
		c := &fakeClearer{err: errBackend}
		s := NewClearanceSession(v, c)
		_, _ = s.Scan(ctx, "P1")

		_, err := s.CommitClearance(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.Len(t, s.Entries(), 1)
	})
}

func TestClearanceSession_Paging(t *testing.T) {
	boards := map[string]BoardInfo{}
	serials := []string{}
	for i := 0; i < 25; i++ {
		serial := "P" + string(rune('A'+i))
		boards[serial] = processingBoard(int64(i+1), serial)
		serials = append(serials, serial)
	}
	v := &fakeValidator{boards: boards}
	s := NewClearanceSession(v, &fakeClearer{})

	_, err := s.ImportRows(context.Background(), serials)
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalPages())
	assert.Len(t, s.Page(1), PageSize)
	assert.Len(t, s.Page(3), 5)
	assert.Equal(t, 3, s.CurrentPage())
	assert.Empty(t, s.Page(4))

	ok, ng := s.Counts()
	assert.Equal(t, 25, ok)
	assert.Zero(t, ng)
}
