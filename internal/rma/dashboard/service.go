package dashboard

import (
	"context"
	"database/sql"
)

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

// Stats assembles the dashboard payload. buyer narrows everything except the
// buyer breakdown itself; "all" or empty means no filter.
func (s *Service) Stats(ctx context.Context, buyer string) (*StatsResponse, error) {
	total, processing, completed, pending, err := s.store.CardStats(ctx, buyer)
	if err != nil {
		return nil, err
	}
	buyers, err := s.store.BuyerStats(ctx)
	if err != nil {
		return nil, err
	}
	defects, err := s.store.DefectStats(ctx, buyer)
	if err != nil {
		return nil, err
	}
	clearTypes, err := s.store.ClearTypeStats(ctx, buyer)
	if err != nil {
		return nil, err
	}
	monthly, err := s.store.MonthlyStats(ctx, buyer)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalReceived:  total,
		Processing:     processing,
		Completed:      completed,
		Pending:        pending,
		MonthlyStats:   monthly,
		BuyerStats:     buyers,
		DefectStats:    defects,
		ClearTypeStats: clearTypes,
	}, nil
}
