package auth

import "time"

// Registration screen preview of an employee.
type EmployeePreview struct {
	EmployeeNo     string `json:"employee_no"`
	FullName       string `json:"full_name"`
	DepartmentName string `json:"department_name"`
	DepartmentID   *int64 `json:"department_id,omitempty"`
}

type RegisterRequest struct {
	EmployeeNo   string `json:"employee_no" binding:"required"`
	DisplayName  string `json:"display_name" binding:"required"`
	Password     string `json:"password" binding:"required"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

type LoginRequest struct {
	EmployeeNo string `json:"employee_no" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// User payload returned alongside the token on login.
type LoginUser struct {
	ID           int64  `json:"id"`
	EmployeeNo   string `json:"employee_no"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

type UserListRow struct {
	ID          int64     `json:"id"`
	EmployeeNo  string    `json:"employee_no"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Department  string    `json:"department"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Role   string `json:"role,omitempty"`
}
