package sqlite

import (
	"context"
	"database/sql"

	"github.com/chromafy/chromafy-server/internal/domain"
)

// userColumns must match the scan order in scanUser.
const userColumns = `id, name, email, password_hash, created_at, updated_at, last_login_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt string
		lastLoginAt          sql.NullString
	)

	if err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt, &updatedAt, &lastLoginAt); err != nil {
		return nil, err
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if lastLoginAt.Valid {
		if u.LastLoginAt, err = parseTime(lastLoginAt.String); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// CreateUser inserts a user. Returns store.ErrAlreadyExists if the ID or email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, email_normalized, password_hash, created_at, updated_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		nullTime(user.LastLoginAt),
	)
	return mapError(err)
}

// GetUser loads a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	return u, mapError(err)
}

// GetUserByEmail loads a user by email, ignoring case and surrounding spaces.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_normalized = ?`, domain.NormalizeEmail(email))
	u, err := scanUser(row)
	return u, mapError(err)
}

// UpdateUser replaces a stored user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			name = ?, email = ?, email_normalized = ?, password_hash = ?,
			updated_at = ?, last_login_at = ?
		WHERE id = ?`,
		user.Name,
		user.Email,
		domain.NormalizeEmail(user.Email),
		user.PasswordHash,
		formatTime(user.UpdatedAt),
		nullTime(user.LastLoginAt),
		user.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectOne(result)
}
