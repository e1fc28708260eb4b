package masters

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/shopspring/decimal"
)

const listLimit = 500

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// Items lists the item master with the cost row still in effect
// (effective_to IS NULL).
func (s *Store) Items(ctx context.Context) ([]ItemRow, error) {
	const q = `
	SELECT
		i.id,
		i.item_no AS pid,
		i.description AS name,
		ic.cost_usd AS cost
	FROM items i
	LEFT JOIN item_costs ic
		ON ic.item_id = i.id
		AND ic.effective_to IS NULL
	ORDER BY i.item_no
	LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, listLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ItemRow{}
	for rows.Next() {
		var (
			id   int64
			pid  string
			name sql.NullString
			cost decimal.NullDecimal
		)
		if err := rows.Scan(&id, &pid, &name, &cost); err != nil {
			return nil, err
		}
		item := ItemRow{
			ID:     strconv.FormatInt(id, 10),
			PID:    pid,
			Name:   pid,
			Active: true,
		}
		if name.Valid && name.String != "" {
			item.Name = name.String
		}
		if cost.Valid {
			item.Cost = cost.Decimal
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) Customers(ctx context.Context) ([]CustomerRow, error) {
	const q = `SELECT id, name FROM buyers ORDER BY name LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, listLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CustomerRow{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out = append(out, CustomerRow{
			ID:     strconv.FormatInt(id, 10),
			Code:   name,
			Name:   name,
			Type:   "Customer",
			Active: true,
		})
	}
	return out, rows.Err()
}

func (s *Store) FaultCodes(ctx context.Context) ([]FaultCodeRow, error) {
	const q = `SELECT id, name FROM defect_positions ORDER BY name LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, listLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FaultCodeRow{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out = append(out, FaultCodeRow{
			ID:          strconv.FormatInt(id, 10),
			Code:        name,
			Description: name,
			Group:       "PCB",
			Severity:    "Medium",
			Active:      true,
		})
	}
	return out, rows.Err()
}
