package masters

import "github.com/shopspring/decimal"

// ItemRow carries an item with its latest effective cost.
type ItemRow struct {
	ID     string          `json:"id"`
	PID    string          `json:"pid"`
	Name   string          `json:"name"`
	Cost   decimal.Decimal `json:"cost"`
	Active bool            `json:"active"`
}

type CustomerRow struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

type FaultCodeRow struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Group       string `json:"group"`
	Severity    string `json:"severity"`
	Active      bool   `json:"active"`
}
