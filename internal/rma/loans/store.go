package loans

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rma-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// Borrow inserts one BORROWED loan per resolvable serial, all inside a single
// transaction. Serials that resolve to no board, and boards that already
// carry an open loan, are collected into skipped instead of failing the
// whole batch.
func (s *Store) Borrow(ctx context.Context, employeeID int64, pids []string, reason string) (int, []SkippedSerial, error) {
	borrowed := 0
	skipped := []SkippedSerial{}

	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const resolveQ = `SELECT id FROM rma_boards WHERE main_pid = ? LIMIT 1`
		const openQ = `SELECT COUNT(*) FROM rma_loans WHERE rma_board_id = ? AND status = ?`
		const insertQ = `
		INSERT INTO rma_loans (rma_board_id, borrower_id, reason, borrow_date, status)
		VALUES (?, ?, ?, CURDATE(), ?)`

		for _, pid := range pids {
			var boardID int64
			err := tx.QueryRowContext(ctx, resolveQ, pid).Scan(&boardID)
			if err == sql.ErrNoRows {
				skipped = append(skipped, SkippedSerial{Serial: pid, Reason: SkipNotFound})
				continue
			}
			if err != nil {
				return err
			}

			var open int
			if err := tx.QueryRowContext(ctx, openQ, boardID, StatusBorrowed).Scan(&open); err != nil {
				return err
			}
			if open > 0 {
				skipped = append(skipped, SkippedSerial{Serial: pid, Reason: SkipAlreadyBorrowed})
				continue
			}

			if _, err := tx.ExecContext(ctx, insertQ, boardID, employeeID, reason, StatusBorrowed); err != nil {
				return err
			}
			borrowed++
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return borrowed, skipped, nil
}

// ActiveLoans lists outstanding loans for one borrower, identified by
// employee code, each joined to its board's serial and current status.
func (s *Store) ActiveLoans(ctx context.Context, employeeCode string) ([]ActiveLoanRow, error) {
	const q = `
	SELECT
		l.id,
		b.main_pid AS pid,
		DATE_FORMAT(l.borrow_date, '%Y-%m-%d') AS borrow_date,
		l.status,
		b.status_actual AS rma_status
	FROM rma_loans l
	JOIN rma_boards b ON l.rma_board_id = b.id
	JOIN employees e ON l.borrower_id = e.id
	WHERE e.employee_no = ? AND l.status = ?`

	rows, err := s.db.QueryContext(ctx, q, employeeCode, StatusBorrowed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActiveLoanRow, 0, 16)
	for rows.Next() {
		var r ActiveLoanRow
		if err := rows.Scan(&r.ID, &r.PID, &r.BorrowDate, &r.Status, &r.RmaStatus); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReturnLoans closes the given loans. The status predicate means a loan
// already RETURNED (or an unknown id) affects zero rows, so a replayed
// confirm is harmless.
func (s *Store) ReturnLoans(ctx context.Context, loanIDs []int64) (int64, error) {
	if len(loanIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(loanIDs))
	placeholders = placeholders[:len(placeholders)-1]
	q := fmt.Sprintf(`
	UPDATE rma_loans
	SET status = '%s', return_date = CURDATE()
	WHERE id IN (%s) AND status = '%s'`, StatusReturned, placeholders, StatusBorrowed)

	args := make([]any, len(loanIDs))
	for i, v := range loanIDs {
		args[i] = v
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
