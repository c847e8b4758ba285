package m_user

import "time"

// Data represents the database model for the users table.
type Data struct {
	UserID       string    `spanner:"user_id"`
	Email        string    `spanner:"email"`
	Name         string    `spanner:"name"`
	Role         string    `spanner:"role"`
	PasswordHash string    `spanner:"password_hash"`
	Version      int64     `spanner:"version"`
	CreatedAt    time.Time `spanner:"created_at"`
	UpdatedAt    time.Time `spanner:"updated_at"`
}
