package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arthneeti/arthneeti/internal/game"
)

type userRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Token        string    `db:"token"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *userRow) user() *game.User {
	return &game.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Token:        r.Token,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateUser inserts a new account with a fresh ID and token.
func (s *Store) CreateUser(username, passwordHash string) (*game.User, error) {
	u := &game.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		Token:        uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.conn.Exec(
		"INSERT INTO users (id, username, password_hash, token, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Username, u.PasswordHash, u.Token, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, game.E(game.KindValidation, "username already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UserByName looks up an account by username.
func (s *Store) UserByName(username string) (*game.User, error) {
	var row userRow
	err := s.conn.Get(&row, "SELECT id, username, password_hash, token, created_at FROM users WHERE username = ?", username)
	if IsNotFound(err) {
		return nil, game.E(game.KindNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("user by name: %w", err)
	}
	return row.user(), nil
}

// UserByToken resolves a bearer token to an account.
func (s *Store) UserByToken(token string) (*game.User, error) {
	var row userRow
	err := s.conn.Get(&row, "SELECT id, username, password_hash, token, created_at FROM users WHERE token = ?", token)
	if IsNotFound(err) {
		return nil, game.E(game.KindPermissionDenied, "invalid token")
	}
	if err != nil {
		return nil, fmt.Errorf("user by token: %w", err)
	}
	return row.user(), nil
}

// RotateToken issues a fresh token for the user and returns it.
func (s *Store) RotateToken(userID string) (string, error) {
	token := uuid.NewString()
	_, err := s.conn.Exec("UPDATE users SET token = ? WHERE id = ?", token, userID)
	if err != nil {
		return "", fmt.Errorf("rotate token: %w", err)
	}
	return token, nil
}
