package domain

import (
	"strings"
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/changetracker"
	"github.com/light-bringer/storefront-service/internal/pkg/domainevent"
	"github.com/light-bringer/storefront-service/internal/pkg/validation"
)

// Role gates access to admin operations.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Field names for change tracking
const (
	FieldEmail        changetracker.Field = "email"
	FieldName         changetracker.Field = "name"
	FieldRole         changetracker.Field = "role"
	FieldPasswordHash changetracker.Field = "password_hash"
	FieldUpdatedAt    changetracker.Field = "updated_at"
)

// User is the account aggregate. Email is stored normalized (trimmed, lower case).
type User struct {
	id           string
	email        string
	name         string
	role         Role
	passwordHash string
	version      int64
	createdAt    time.Time
	updatedAt    time.Time

	changes *changetracker.Tracker
	domainevent.Recorder
}

// NewUser creates a user with an already hashed password.
func NewUser(id, email, name string, role Role, passwordHash string, now time.Time) (*User, error) {
	var errs validation.Errors
	normalized, ok := validation.NormalizeEmail(email)
	if !ok {
		errs.Add("email", "must be a valid email address")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "is required")
	}
	if !role.Valid() {
		errs.Add("role", "must be admin or user")
	}
	if passwordHash == "" {
		errs.Add("password", "is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	u := &User{
		id:           id,
		email:        normalized,
		name:         name,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
		changes:      changetracker.New(),
	}
	u.changes.MarkDirty(FieldEmail, FieldName, FieldRole, FieldPasswordHash, FieldUpdatedAt)

	u.Record(&UserRegisteredEvent{
		UserID:       u.id,
		Email:        u.email,
		Role:         u.role,
		RegisteredAt: now,
	})

	return u, nil
}

// Snapshot is the persisted state of a user.
type Snapshot struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct reconstitutes a User from storage.
func Reconstruct(s Snapshot) *User {
	return &User{
		id:           s.ID,
		email:        s.Email,
		name:         s.Name,
		role:         s.Role,
		passwordHash: s.PasswordHash,
		version:      s.Version,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		changes:      changetracker.New(),
	}
}

// Snapshot returns the current state for persistence.
func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:           u.id,
		Email:        u.email,
		Name:         u.name,
		Role:         u.role,
		PasswordHash: u.passwordHash,
		Version:      u.version,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}

// Getters
func (u *User) ID() string                      { return u.id }
func (u *User) Email() string                   { return u.email }
func (u *User) Name() string                    { return u.name }
func (u *User) Role() Role                      { return u.role }
func (u *User) IsAdmin() bool                   { return u.role == RoleAdmin }
func (u *User) PasswordHash() string            { return u.passwordHash }
func (u *User) Version() int64                  { return u.version }
func (u *User) CreatedAt() time.Time            { return u.createdAt }
func (u *User) UpdatedAt() time.Time            { return u.updatedAt }
func (u *User) Changes() *changetracker.Tracker { return u.changes }

// Profile describes a partial profile update. Role is only honoured for admin callers;
// that check belongs to the usecase.
type Profile struct {
	Name  *string
	Email *string
	Role  *Role
}

// UpdateProfile validates and applies a partial update. Uniqueness of the new email is
// checked by the caller against the repository.
func (u *User) UpdateProfile(p Profile, now time.Time) error {
	var errs validation.Errors
	name, email, role := u.name, u.email, u.role
	if p.Name != nil {
		if name = strings.TrimSpace(*p.Name); name == "" {
			errs.Add("name", "is required")
		}
	}
	if p.Email != nil {
		normalized, ok := validation.NormalizeEmail(*p.Email)
		if !ok {
			errs.Add("email", "must be a valid email address")
		}
		email = normalized
	}
	if p.Role != nil {
		if role = *p.Role; !role.Valid() {
			errs.Add("role", "must be admin or user")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	var fields []string
	if p.Name != nil && name != u.name {
		u.name = name
		u.changes.MarkDirty(FieldName)
		fields = append(fields, string(FieldName))
	}
	if p.Email != nil && email != u.email {
		u.email = email
		u.changes.MarkDirty(FieldEmail)
		fields = append(fields, string(FieldEmail))
	}
	if p.Role != nil && role != u.role {
		u.role = role
		u.changes.MarkDirty(FieldRole)
		fields = append(fields, string(FieldRole))
	}

	u.touch(now)
	if len(fields) > 0 {
		u.Record(&UserUpdatedEvent{UserID: u.id, Fields: fields, UpdatedAt: now})
	}
	return nil
}

// SetPasswordHash replaces the stored hash. Verifying the old password is the caller's job.
func (u *User) SetPasswordHash(hash string, now time.Time) {
	u.passwordHash = hash
	u.changes.MarkDirty(FieldPasswordHash)
	u.touch(now)
	u.Record(&PasswordChangedEvent{UserID: u.id, ChangedAt: now})
}

// RequestPasswordReset records a reset request without changing any state.
func (u *User) RequestPasswordReset(now time.Time) {
	u.Record(&PasswordResetRequestedEvent{UserID: u.id, Email: u.email, RequestedAt: now})
}

// MarkDeleted records the deletion event.
func (u *User) MarkDeleted(by string, now time.Time) {
	u.Record(&UserDeletedEvent{UserID: u.id, DeletedBy: by, DeletedAt: now})
}

func (u *User) touch(now time.Time) {
	u.updatedAt = now
	u.changes.MarkDirty(FieldUpdatedAt)
}
