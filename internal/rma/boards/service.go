package boards

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

func (s *Service) List(ctx context.Context, f ListFilter, p Page) (*RmaListResponse, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	rows, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return nil, err
	}

	items := make([]RmaListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, RmaListItem{
			ID:            r.ID,
			RmaNo:         r.RmaNo,
			Customer:      nullStr(r.BuyerName),
			Serial:        r.MainPID,
			Model:         nullStr(r.ModelName),
			Status:        r.StatusActual,
			CreatedDate:   r.RmaDate,
			Board:         nullStr(r.BoardName),
			Face:          nullStr(r.Face),
			DefectSymptom: nullStr(r.DefectSymptomRaw),
		})
	}
	return &RmaListResponse{Data: items, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*RmaDetail, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound("RMA not found")
		}
		return nil, err
	}

	rmaNo := "RMA-" + strconv.FormatInt(r.ID, 10)
	if r.MainWorkOrder.Valid && r.MainWorkOrder.String != "" {
		rmaNo = r.MainWorkOrder.String
	}

	d := &RmaDetail{
		ID:               r.ID,
		RmaNo:            rmaNo,
		Customer:         nullStr(r.BuyerName),
		Serial:           r.MainPID,
		Model:            nullStr(r.ModelName),
		Board:            nullStr(r.BoardName),
		Status:           r.StatusActual,
		CreatedDate:      r.RmaDateFmt,
		Qty:              r.Qty,
		DefectSymptomRaw: nullStr(r.DefectSymptomRaw),
		DefectSymptomFin: nullStr(r.DefectSymptomFin),
		ClearType:        nullStr(r.ClearType),
		PaymentStatus:    nullStr(r.PaymentStatus),
		InvoiceNo:        nullStr(r.InvoiceNo),
		ClearDate:        nullStr(r.ClearDateFmt),
	}
	if r.CostUSD.Valid {
		v := r.CostUSD.Decimal
		d.CostUSD = &v
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, in CreateRmaRequest) (int64, error) {
	if strings.TrimSpace(in.Customer) == "" ||
		strings.TrimSpace(in.Serial) == "" ||
		strings.TrimSpace(in.Model) == "" {
		return 0, ErrInvalid("customer, serial, and model are required")
	}
	return s.store.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateRmaRequest) error {
	_, err := s.store.Update(ctx, id, in)
	return err
}

// ValidateSerials is the Validation Engine lookup: exact, case-sensitive match
// against main_pid, no side effects. Duplicates in the input each resolve to
// the same underlying row; the result carries one entry per matched board.
func (s *Service) ValidateSerials(ctx context.Context, serials []string) ([]ValidatedBoard, error) {
	if len(serials) == 0 {
		return []ValidatedBoard{}, nil
	}
	return s.store.FindBySerials(ctx, serials)
}

// ConfirmClear transitions the given boards to OUT. Ids are deduplicated; the
// returned count is rows actually affected, so a replay reports zero.
func (s *Service) ConfirmClear(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrInvalid("no ids provided")
	}

	seen := make(map[int64]struct{}, len(ids))
	distinct := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	return s.store.ConfirmClear(ctx, distinct)
}

// ===== helpers =====

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
