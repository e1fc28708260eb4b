package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrAccountNotActive = errors.New("account not active")
)

// Password an admin reset puts back in place until the user changes it.
const defaultPassword = "123456"

type Service struct {
	store  *Store
	secret []byte
	ttl    time.Duration
}

func NewService(db *sql.DB, secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{store: NewStore(db), secret: secret, ttl: ttl}
}

func (s *Service) Secret() []byte { return s.secret }

// CheckEmployee backs the registration screen: the employee must exist and
// must not have an account yet.
func (s *Service) CheckEmployee(ctx context.Context, employeeNo string) (*EmployeePreview, error) {
	existing, err := s.store.GetByEmployeeNo(ctx, employeeNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	p, err := s.store.LookupEmployee(ctx, employeeNo)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Register creates a pending user account. Approval happens on the admin page.
func (s *Service) Register(ctx context.Context, in RegisterRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &User{
		EmployeeNo:   in.EmployeeNo,
		DisplayName:  in.DisplayName,
		PasswordHash: string(hash),
		Role:         RoleUser,
		Status:       StatusPending,
	}
	if in.DepartmentID != nil {
		u.DepartmentID = sql.NullInt64{Int64: *in.DepartmentID, Valid: true}
	}

	if err := s.store.Create(ctx, u); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *Service) Login(ctx context.Context, employeeNo, password string) (string, *LoginUser, error) {
	u, err := s.store.GetByEmployeeNo(ctx, employeeNo)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthFailed
	}
	if u.Status != StatusActive {
		return "", nil, ErrAccountNotActive
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.EmployeeNo,
		"uid":  u.ID,
		"role": u.Role,
		"name": u.DisplayName,
		"exp":  time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	lu := &LoginUser{
		ID:         u.ID,
		EmployeeNo: u.EmployeeNo,
		Name:       u.DisplayName,
		Role:       u.Role,
	}
	if u.DepartmentID.Valid {
		v := u.DepartmentID.Int64
		lu.DepartmentID = &v
	}
	return signed, lu, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]UserListRow, error) {
	return s.store.List(ctx)
}

func (s *Service) SetStatus(ctx context.Context, id int64, status, role string) error {
	n, err := s.store.UpdateStatus(ctx, id, status, role)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	n, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword puts the account back to the well-known default password.
func (s *Service) ResetPassword(ctx context.Context, id int64) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	n, err := s.store.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
