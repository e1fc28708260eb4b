package boards

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewStore(conn), mock
}

func TestStore_ConfirmClear(t *testing.T) {
	ctx := context.Background()
	clearQ := `(?s)UPDATE rma_boards\s+SET status_actual = 'OUT', clear_date = CURDATE\(\)\s+WHERE id IN \(\?,\?\) AND status_actual <> 'OUT'`

	t.Run("stamps OUT and reports affected rows", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec(clearQ).
			WithArgs(int64(10), int64(20)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := store.ConfirmClear(ctx, []int64{10, 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay affects zero rows", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec(clearQ).
			WithArgs(int64(10), int64(20)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := store.ConfirmClear(ctx, []int64{10, 20})
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("stale ids still let the rest transition", func(t *testing.T) {
		store, mock := newMock(t)
		mock.ExpectExec(`(?s)UPDATE rma_boards.*WHERE id IN \(\?,\?,\?\) AND status_actual <> 'OUT'`).
			WithArgs(int64(1), int64(2), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := store.ConfirmClear(ctx, []int64{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		store, mock := newMock(t)
		n, err := store.ConfirmClear(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_FindBySerials(t *testing.T) {
	store, mock := newMock(t)
	ctx := context.Background()

	cols := []string{"id", "main_pid", "status_actual", "rma_date", "model_name", "buyer_name"}
	mock.ExpectQuery(`(?s)SELECT.*FROM rma_boards rb.*WHERE rb\.main_pid IN \(\?,\?\)`).
		WithArgs("P1", "P2").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(10), "P1", "Processing", "2026-08-01", "M-100", nil))

	out, err := store.FindBySerials(ctx, []string{"P1", "P2"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(10), out[0].ID)
	assert.Equal(t, "Processing", out[0].Status)
	require.NotNil(t, out[0].Model)
	assert.Equal(t, "M-100", *out[0].Model)
	assert.Nil(t, out[0].Customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ValidateSerials_Empty(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	svc := NewService(conn)

	out, err := svc.ValidateSerials(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ConfirmClear(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty batch", func(t *testing.T) {
		conn, _, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		_, err = NewService(conn).ConfirmClear(ctx, nil)
		require.Error(t, err)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, CodeInvalidArgument, apiErr.Code)
	})

	t.Run("deduplicates ids before the update", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectExec(`(?s)UPDATE rma_boards.*WHERE id IN \(\?,\?\) AND status_actual <> 'OUT'`).
			WithArgs(int64(10), int64(20)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := NewService(conn).ConfirmClear(ctx, []int64{10, 20, 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
