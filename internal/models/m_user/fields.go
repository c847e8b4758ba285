package m_user

// Field name constants for the users table.
const (
	TableName = "users"

	UserID       = "user_id"
	Email        = "email"
	Name         = "name"
	Role         = "role"
	PasswordHash = "password_hash"
	Version      = "version"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{UserID, Email, Name, Role, PasswordHash, Version, CreatedAt, UpdatedAt}
