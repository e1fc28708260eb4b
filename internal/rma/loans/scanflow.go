package loans

import (
	"context"

	"rma-backend/internal/scanflow"
)

// ScanGateway adapts the loan service to the scanflow session interfaces
// (Lender, LoanSource, Returner).
type ScanGateway struct{ svc *Service }

func NewScanGateway(svc *Service) *ScanGateway { return &ScanGateway{svc: svc} }

func (g *ScanGateway) Borrow(ctx context.Context, employeeID int64, serials []string, reason string) (*scanflow.BorrowOutcome, error) {
	resp, err := g.svc.Borrow(ctx, BorrowRequest{EmployeeID: employeeID, PIDs: serials, Reason: reason})
	if err != nil {
		return nil, err
	}
	out := &scanflow.BorrowOutcome{Borrowed: resp.Borrowed}
	for _, sk := range resp.Skipped {
		out.Skipped = append(out.Skipped, scanflow.SkippedSerial{Serial: sk.Serial, Reason: sk.Reason})
	}
	return out, nil
}

func (g *ScanGateway) ActiveLoans(ctx context.Context, borrowerCode string) ([]scanflow.LoanInfo, error) {
	rows, err := g.svc.ActiveLoans(ctx, borrowerCode)
	if err != nil {
		return nil, err
	}
	out := make([]scanflow.LoanInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, scanflow.LoanInfo{
			ID:         r.ID,
			Serial:     r.PID,
			BorrowDate: r.BorrowDate,
			RmaStatus:  r.RmaStatus,
		})
	}
	return out, nil
}

func (g *ScanGateway) ReturnLoans(ctx context.Context, loanIDs []int64) (int64, error) {
	resp, err := g.svc.Return(ctx, ReturnRequest{LoanIDs: loanIDs})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}
