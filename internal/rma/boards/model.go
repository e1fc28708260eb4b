package boards

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Board lifecycle statuses. OUT is set only by the confirm-clear operation;
// legacy rows may carry free-form values outside these three.
const (
	StatusIn         = "IN"
	StatusProcessing = "Processing"
	StatusOut        = "OUT"
)

// Board is one row of rma_boards (one physical unit under RMA).
type Board struct {
	ID               int64
	RmaDate          time.Time
	IssueDate        sql.NullTime
	BuyerID          sql.NullInt64
	ModelID          sql.NullInt64
	BoardID          sql.NullInt64
	Face             sql.NullString
	DefectSymptomRaw sql.NullString
	DefectSymptomFin sql.NullString
	MainPID          string
	MainWorkOrder    sql.NullString
	MainPartNumber   sql.NullString
	Qty              int
	StatusActual     string
	ClearDate        sql.NullTime
	ClearType        sql.NullString
	PaymentStatus    sql.NullString
	InvoiceNo        sql.NullString
	CostUSD          decimal.NullDecimal
}

// listRow is the joined projection the list screen uses.
type listRow struct {
	ID               int64
	RmaDate          string
	BuyerName        sql.NullString
	ModelName        sql.NullString
	BoardName        sql.NullString
	Face             sql.NullString
	DefectSymptomRaw sql.NullString
	MainPID          string
	StatusActual     string
	RmaNo            string
}
