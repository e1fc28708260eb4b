package auth

import (
	"context"
	"database/sql"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) GetByEmployeeNo(ctx context.Context, employeeNo string) (*User, error) {
	const q = `
	SELECT id, employee_no, display_name, password, department_id, role, status, created_at
	FROM users WHERE employee_no = ?`
	var u User
	err := s.db.QueryRowContext(ctx, q, employeeNo).Scan(
		&u.ID, &u.EmployeeNo, &u.DisplayName, &u.PasswordHash,
		&u.DepartmentID, &u.Role, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// LookupEmployee resolves an employee row for the registration screen.
// Departments are joined by name because legacy employee rows carry the
// department as free text.
func (s *Store) LookupEmployee(ctx context.Context, employeeNo string) (*EmployeePreview, error) {
	const q = `
	SELECT e.employee_no, e.full_name, e.department, d.id
	FROM employees e
	LEFT JOIN departments d ON e.department = d.name
	WHERE e.employee_no = ?`
	var (
		p      EmployeePreview
		deptID sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, q, employeeNo).Scan(&p.EmployeeNo, &p.FullName, &p.DepartmentName, &deptID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deptID.Valid {
		v := deptID.Int64
		p.DepartmentID = &v
	}
	return &p, nil
}

func (s *Store) Create(ctx context.Context, u *User) error {
	const q = `
	INSERT INTO users (employee_no, display_name, password, department_id, role, status)
	VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		u.EmployeeNo, u.DisplayName, u.PasswordHash, u.DepartmentID, u.Role, u.Status)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	u.ID = id
	return nil
}

// List returns all users with a resolved department name. Falls back to the
// free-text department on the employee row when no departments row matches.
func (s *Store) List(ctx context.Context) ([]UserListRow, error) {
	const q = `
	SELECT
		u.id, u.employee_no, u.display_name, u.role, u.status, u.created_at,
		COALESCE(d.name, e.department, '') AS department
	FROM users u
	LEFT JOIN departments d ON u.department_id = d.id
	LEFT JOIN employees e ON u.employee_no = e.employee_no
	ORDER BY u.created_at DESC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserListRow, 0, 32)
	for rows.Next() {
		var r UserListRow
		if err := rows.Scan(&r.ID, &r.EmployeeNo, &r.DisplayName, &r.Role, &r.Status, &r.CreatedAt, &r.Department); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateStatus sets status and, when role is non-empty, role as well.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status, role string) (int64, error) {
	q := `UPDATE users SET status = ?`
	args := []any{status}
	if role != "" {
		q += `, role = ?`
		args = append(args, role)
	}
	q += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, hash, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
