package boards

import (
	"context"

	"rma-backend/internal/scanflow"
)

// ScanValidator exposes the serial lookup as a scanflow.Validator so the
// workflow sessions can run against the service in-process.
type ScanValidator struct{ svc *Service }

func NewScanValidator(svc *Service) *ScanValidator { return &ScanValidator{svc: svc} }

func (v *ScanValidator) ValidateSerials(ctx context.Context, serials []string) ([]scanflow.BoardInfo, error) {
	rows, err := v.svc.ValidateSerials(ctx, serials)
	if err != nil {
		return nil, err
	}
	out := make([]scanflow.BoardInfo, 0, len(rows))
	for _, r := range rows {
		b := scanflow.BoardInfo{ID: r.ID, Serial: r.Serial, Status: r.Status}
		if r.Model != nil {
			b.Model = *r.Model
		}
		if r.Customer != nil {
			b.Customer = *r.Customer
		}
		if r.CreatedDate != nil {
			b.CreatedDate = *r.CreatedDate
		}
		out = append(out, b)
	}
	return out, nil
}
