package boards

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"rma-backend/internal/platform/db"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

type ListFilter struct {
	Search    string
	Status    string
	StartDate string // "2006-01-02"
	EndDate   string
}

type Page struct {
	Page  int
	Limit int
}

// Columns the global search matches against, same set the list screen offers.
const searchWhere = ` AND (
	LOWER(rb.main_work_order) LIKE ? OR
	LOWER(rb.main_pid) LIKE ? OR
	LOWER(rb.main_part_number) LIKE ? OR
	LOWER(b.name) LIKE ? OR
	LOWER(m.name) LIKE ? OR
	LOWER(brd.name) LIKE ? OR
	LOWER(rb.face) LIKE ? OR
	LOWER(rb.defect_symptom_raw) LIKE ? OR
	DATE_FORMAT(rb.rma_date, '%Y-%m-%d') LIKE ?
)`

func buildListWhere(f ListFilter) (string, []any) {
	var sb strings.Builder
	args := []any{}
	sb.WriteString(`WHERE 1=1`)

	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		sb.WriteString(searchWhere)
		like := "%" + s + "%"
		for i := 0; i < 9; i++ {
			args = append(args, like)
		}
	}
	if f.StartDate != "" {
		sb.WriteString(` AND rb.rma_date >= ?`)
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		sb.WriteString(` AND rb.rma_date <= ?`)
		args = append(args, f.EndDate)
	}
	if f.Status != "" && f.Status != "All" {
		sb.WriteString(` AND rb.status_actual = ?`)
		args = append(args, f.Status)
	}
	return sb.String(), args
}

func (s *Store) List(ctx context.Context, f ListFilter, p Page) ([]listRow, int64, error) {
	where, args := buildListWhere(f)

	countQ := `
	SELECT COUNT(*)
	FROM rma_boards rb
	LEFT JOIN buyers b ON rb.buyer_id = b.id
	LEFT JOIN models m ON rb.model_id = m.id
	LEFT JOIN boards brd ON rb.board_id = brd.id
	` + where
	var total int64
	if err := s.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	offset := (p.Page - 1) * p.Limit

	dataQ := `
	SELECT
		rb.id,
		DATE_FORMAT(rb.rma_date, '%Y-%m-%d') AS rma_date,
		b.name AS buyer_name,
		m.name AS model_name,
		brd.name AS board_name,
		rb.face,
		rb.defect_symptom_raw,
		rb.main_pid,
		rb.status_actual,
		IF(rb.main_work_order IS NOT NULL AND rb.main_work_order <> '',
		   rb.main_work_order,
		   CONCAT('RMA-', rb.id)
		) AS rma_no
	FROM rma_boards rb
	LEFT JOIN buyers b ON rb.buyer_id = b.id
	LEFT JOIN models m ON rb.model_id = m.id
	LEFT JOIN boards brd ON rb.board_id = brd.id
	` + where + `
	ORDER BY rb.rma_date DESC, rb.id DESC
	LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, dataQ, append(args, p.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]listRow, 0, p.Limit)
	for rows.Next() {
		var r listRow
		if err := rows.Scan(
			&r.ID, &r.RmaDate, &r.BuyerName, &r.ModelName, &r.BoardName,
			&r.Face, &r.DefectSymptomRaw, &r.MainPID, &r.StatusActual, &r.RmaNo,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

type detailRow struct {
	Board
	RmaDateFmt   string
	ClearDateFmt sql.NullString
	BuyerName    sql.NullString
	ModelName    sql.NullString
	BoardName    sql.NullString
}

func (s *Store) GetByID(ctx context.Context, id int64) (*detailRow, error) {
	const q = `
	SELECT
		rb.id,
		DATE_FORMAT(rb.rma_date, '%Y-%m-%d') AS rma_date_fmt,
		DATE_FORMAT(rb.clear_date, '%Y-%m-%d') AS clear_date_fmt,
		rb.main_pid, rb.main_work_order, rb.qty,
		rb.status_actual,
		rb.defect_symptom_raw, rb.defect_symptom_fin,
		rb.clear_type, rb.payment_status, rb.invoice_no, rb.cost_usd,
		b.name AS buyer_name,
		m.name AS model_name,
		brd.name AS board_name
	FROM rma_boards rb
	LEFT JOIN buyers b ON rb.buyer_id = b.id
	LEFT JOIN models m ON rb.model_id = m.id
	LEFT JOIN boards brd ON rb.board_id = brd.id
	WHERE rb.id = ?`
	var r detailRow
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.RmaDateFmt, &r.ClearDateFmt,
		&r.MainPID, &r.MainWorkOrder, &r.Qty,
		&r.StatusActual,
		&r.DefectSymptomRaw, &r.DefectSymptomFin,
		&r.ClearType, &r.PaymentStatus, &r.InvoiceNo, &r.CostUSD,
		&r.BuyerName, &r.ModelName, &r.BoardName,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// resolveNameID finds or creates a buyers/models row by name inside tx.
func resolveNameID(ctx context.Context, tx db.DBTX, table, name string) (int64, error) {
	var selectQ, insertQ string
	switch table {
	case "buyers":
		selectQ = `SELECT id FROM buyers WHERE name = ?`
		insertQ = `INSERT INTO buyers (name) VALUES (?)`
	case "models":
		selectQ = `SELECT id FROM models WHERE name = ?`
		insertQ = `INSERT INTO models (name) VALUES (?)`
	default:
		return 0, fmt.Errorf("resolveNameID: unknown table %q", table)
	}

	var id int64
	err := tx.QueryRowContext(ctx, selectQ, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, insertQ, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Create inserts a new RMA board, resolving buyer/model names in the same
// transaction. rma_date and the year/month/week bucketing come from CURDATE.
func (s *Store) Create(ctx context.Context, in CreateRmaRequest) (int64, error) {
	status := in.Status
	if status == "" {
		status = StatusIn
	}

	var newID int64
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		buyerID, err := resolveNameID(ctx, tx, "buyers", in.Customer)
		if err != nil {
			return err
		}
		modelID, err := resolveNameID(ctx, tx, "models", in.Model)
		if err != nil {
			return err
		}

		const q = `
		INSERT INTO rma_boards (
			year, month, week,
			rma_date, issue_date,
			buyer_id, model_id,
			main_pid,
			qty,
			status_actual
		)
		VALUES (
			YEAR(CURDATE()), MONTH(CURDATE()), WEEK(CURDATE(), 1),
			CURDATE(), CURDATE(),
			?, ?, ?,
			1,
			?
		)`
		res, err := tx.ExecContext(ctx, q, buyerID, modelID, in.Serial, status)
		if err != nil {
			return err
		}
		newID, err = res.LastInsertId()
		return err
	})
	return newID, err
}

// Update applies a partial update; buyer/model names are resolved (or created)
// inside the same transaction. Returns sql.ErrNoRows semantics via affected=0.
func (s *Store) Update(ctx context.Context, id int64, in UpdateRmaRequest) (int64, error) {
	var affected int64
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		sets := []string{}
		args := []any{}

		if in.Customer != nil {
			buyerID, err := resolveNameID(ctx, tx, "buyers", *in.Customer)
			if err != nil {
				return err
			}
			sets = append(sets, "buyer_id = ?")
			args = append(args, buyerID)
		}
		if in.Model != nil {
			modelID, err := resolveNameID(ctx, tx, "models", *in.Model)
			if err != nil {
				return err
			}
			sets = append(sets, "model_id = ?")
			args = append(args, modelID)
		}
		if in.Serial != nil {
			sets = append(sets, "main_pid = ?")
			args = append(args, *in.Serial)
		}
		if in.Status != nil {
			sets = append(sets, "status_actual = ?")
			args = append(args, *in.Status)
		}
		if in.ClearDate != nil {
			sets = append(sets, "clear_date = ?")
			args = append(args, *in.ClearDate)
		}
		if in.ClearType != nil {
			sets = append(sets, "clear_type = ?")
			args = append(args, *in.ClearType)
		}
		if in.PaymentStatus != nil {
			sets = append(sets, "payment_status = ?")
			args = append(args, *in.PaymentStatus)
		}
		if in.InvoiceNo != nil {
			sets = append(sets, "invoice_no = ?")
			args = append(args, *in.InvoiceNo)
		}
		if in.CostUSD != nil {
			sets = append(sets, "cost_usd = ?")
			args = append(args, *in.CostUSD)
		}
		if len(sets) == 0 {
			return nil
		}

		args = append(args, id)
		q := fmt.Sprintf(`UPDATE rma_boards SET %s WHERE id = ?`, strings.Join(sets, ", "))
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// FindBySerials returns the boards whose main_pid exactly matches any of the
// given serials. Pure read; unmatched serials just have no row.
func (s *Store) FindBySerials(ctx context.Context, serials []string) ([]ValidatedBoard, error) {
	if len(serials) == 0 {
		return []ValidatedBoard{}, nil
	}

	placeholders := strings.Repeat("?,", len(serials))
	placeholders = placeholders[:len(placeholders)-1]
	q := fmt.Sprintf(`
	SELECT
		rb.id,
		rb.main_pid,
		rb.status_actual,
		DATE_FORMAT(rb.rma_date, '%%Y-%%m-%%d') AS rma_date,
		m.name AS model_name,
		b.name AS buyer_name
	FROM rma_boards rb
	LEFT JOIN models m ON rb.model_id = m.id
	LEFT JOIN buyers b ON rb.buyer_id = b.id
	WHERE rb.main_pid IN (%s)`, placeholders)

	args := make([]any, len(serials))
	for i, v := range serials {
		args[i] = v
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ValidatedBoard, 0, len(serials))
	for rows.Next() {
		var (
			v       ValidatedBoard
			created sql.NullString
			model   sql.NullString
			buyer   sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Serial, &v.Status, &created, &model, &buyer); err != nil {
			return nil, err
		}
		if created.Valid {
			val := created.String
			v.CreatedDate = &val
		}
		if model.Valid {
			val := model.String
			v.Model = &val
		}
		if buyer.Valid {
			val := buyer.String
			v.Customer = &val
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ConfirmClear bulk-transitions boards to OUT and stamps clear_date.
// The status predicate makes a replayed commit a no-op: rows already OUT
// (or ids that no longer exist) affect zero rows while the rest still
// transition.
func (s *Store) ConfirmClear(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	q := fmt.Sprintf(`
	UPDATE rma_boards
	SET status_actual = '%s', clear_date = CURDATE()
	WHERE id IN (%s) AND status_actual <> '%s'`, StatusOut, placeholders, StatusOut)

	args := make([]any, len(ids))
	for i, v := range ids {
		args[i] = v
	}

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
