package loans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ===== Error model =====

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(conn *sql.DB) *Service { return &Service{db: conn, store: NewStore(conn)} }

func (s *Service) Borrow(ctx context.Context, in BorrowRequest) (*BorrowResponse, error) {
	if in.EmployeeID <= 0 {
		return nil, ErrInvalid("employeeId is required")
	}
	if len(in.PIDs) == 0 {
		return nil, ErrInvalid("at least one pid is required")
	}

	borrowed, skipped, err := s.store.Borrow(ctx, in.EmployeeID, in.PIDs, in.Reason)
	if err != nil {
		return nil, err
	}
	return &BorrowResponse{Success: true, Borrowed: borrowed, Skipped: skipped}, nil
}

func (s *Service) ActiveLoans(ctx context.Context, employeeCode string) ([]ActiveLoanRow, error) {
	if employeeCode == "" {
		return nil, ErrInvalid("employee code is required")
	}
	return s.store.ActiveLoans(ctx, employeeCode)
}

func (s *Service) Return(ctx context.Context, in ReturnRequest) (*ReturnResponse, error) {
	// empty list is a successful no-op, matching what callers already expect
	if len(in.LoanIDs) == 0 {
		return &ReturnResponse{Success: true, Count: 0}, nil
	}
	count, err := s.store.ReturnLoans(ctx, in.LoanIDs)
	if err != nil {
		return nil, err
	}
	return &ReturnResponse{Success: true, Count: count}, nil
}
