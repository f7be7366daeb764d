package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var ErrDuplicateEmail = errors.New("email already exists")
var ErrNotFound = errors.New("not found")

type UserStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

func GetUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db, logger: logger_i.NewLogger("UserStore")}
}

func (s *UserStore) CreateUser(ctx context.Context, email string, passwordHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, role) VALUES (?, ?, 'user')`, email, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (commerceModel.User, error) {
	var u commerceModel.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?`, email).
		Scan(&u.Id, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *UserStore) GetById(ctx context.Context, id int64) (commerceModel.User, error) {
	var u commerceModel.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?`, id).
		Scan(&u.Id, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *UserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return err
}

func (s *UserStore) SetRole(ctx context.Context, id int64, role commerceModel.Role) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) ListUsers(ctx context.Context, limit int) ([]commerceModel.User, error) {
	query := `SELECT id, email, role, created_at FROM users ORDER BY created_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []commerceModel.User
	for rows.Next() {
		var u commerceModel.User
		if err := rows.Scan(&u.Id, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserStore) CountUsers(ctx context.Context) (total int64, admins int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN role = 'admin' THEN 1 ELSE 0 END), 0) FROM users`).
		Scan(&total, &admins)
	return total, admins, err
}
