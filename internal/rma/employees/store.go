package employees

import (
	"context"
	"database/sql"
)

// EmployeeDto is the borrower-info panel payload.
type EmployeeDto struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DepartmentName string `json:"department_name"`
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) GetByCode(ctx context.Context, code string) (*EmployeeDto, error) {
	const q = `
	SELECT
		id,
		employee_no AS code,
		full_name AS name,
		department AS department_name
	FROM employees
	WHERE employee_no = ?`
	var e EmployeeDto
	err := s.db.QueryRowContext(ctx, q, code).Scan(&e.ID, &e.Code, &e.Name, &e.DepartmentName)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
