package employees

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("employee not found")

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

// GetByCode resolves an employee for the borrower panel. Read-only.
func (s *Service) GetByCode(ctx context.Context, code string) (*EmployeeDto, error) {
	if code == "" {
		return nil, ErrNotFound
	}
	e, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
