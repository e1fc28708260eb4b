package dashboard

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// buyerFilter renders an optional buyer restriction. prefix is "WHERE" or "AND"
// depending on what the caller's query already carries.
func buyerFilter(prefix, buyer string) (string, []any) {
	if buyer == "" || buyer == "all" {
		return "", nil
	}
	return fmt.Sprintf(" %s b.name = ?", prefix), []any{buyer}
}

func (s *Store) CardStats(ctx context.Context, buyer string) (total, processing, completed, pending int64, err error) {
	q := `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN rb.status_actual = 'Processing' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN rb.status_actual = 'OUT' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN rb.status_actual = 'IN' THEN 1 ELSE 0 END), 0)
	FROM rma_boards rb
	LEFT JOIN buyers b ON b.id = rb.buyer_id`
	cond, args := buyerFilter("WHERE", buyer)
	err = s.db.QueryRowContext(ctx, q+cond, args...).Scan(&total, &processing, &completed, &pending)
	return
}

func (s *Store) BuyerStats(ctx context.Context) ([]NameValue, error) {
	const q = `
	SELECT COALESCE(b.name, 'Unknown'), COUNT(*)
	FROM rma_boards rb
	LEFT JOIN buyers b ON b.id = rb.buyer_id
	GROUP BY b.name`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []NameValue{}
	for rows.Next() {
		var nv NameValue
		if err := rows.Scan(&nv.Name, &nv.Value); err != nil {
			return nil, err
		}
		out = append(out, nv)
	}
	return out, rows.Err()
}

func (s *Store) DefectStats(ctx context.Context, buyer string) ([]NameCount, error) {
	q := `
	SELECT COALESCE(rb.defect_symptom_raw, 'Unknown'), COUNT(*) AS cnt
	FROM rma_boards rb
	LEFT JOIN buyers b ON b.id = rb.buyer_id`
	cond, args := buyerFilter("WHERE", buyer)
	q += cond + `
	GROUP BY rb.defect_symptom_raw
	ORDER BY cnt DESC
	LIMIT 10`
	return s.scanNameCounts(ctx, q, args)
}

func (s *Store) ClearTypeStats(ctx context.Context, buyer string) ([]NameCount, error) {
	q := `
	SELECT COALESCE(rb.clear_type, 'Unknown'), COUNT(*) AS cnt
	FROM rma_boards rb
	LEFT JOIN buyers b ON b.id = rb.buyer_id
	WHERE rb.status_actual = 'Processing'`
	cond, args := buyerFilter("AND", buyer)
	q += cond + `
	GROUP BY rb.clear_type
	ORDER BY cnt DESC`
	return s.scanNameCounts(ctx, q, args)
}

// MonthlyStats returns the received/cleared trend for the trailing twelve
// months, oldest first.
func (s *Store) MonthlyStats(ctx context.Context, buyer string) ([]MonthlyStat, error) {
	q := `
	SELECT
		YEAR(rb.rma_date),
		MONTH(rb.rma_date),
		COUNT(*),
		COALESCE(SUM(CASE WHEN rb.status_actual = 'OUT' THEN 1 ELSE 0 END), 0)
	FROM rma_boards rb
	LEFT JOIN buyers b ON b.id = rb.buyer_id
	WHERE rb.rma_date >= DATE_SUB(CURDATE(), INTERVAL 12 MONTH)`
	cond, args := buyerFilter("AND", buyer)
	q += cond + `
	GROUP BY YEAR(rb.rma_date), MONTH(rb.rma_date)
	ORDER BY YEAR(rb.rma_date), MONTH(rb.rma_date)`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MonthlyStat{}
	for rows.Next() {
		var m MonthlyStat
		if err := rows.Scan(&m.Year, &m.Month, &m.Received, &m.Cleared); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) scanNameCounts(ctx context.Context, q string, args []any) ([]NameCount, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []NameCount{}
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}
