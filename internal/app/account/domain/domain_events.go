package domain

import "time"

// UserRegisteredEvent is emitted when an account is created, by sign-up or by an admin.
type UserRegisteredEvent struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (e *UserRegisteredEvent) EventType() string     { return "account.registered" }
func (e *UserRegisteredEvent) AggregateID() string   { return e.UserID }
func (e *UserRegisteredEvent) OccurredAt() time.Time { return e.RegisteredAt }

// UserUpdatedEvent is emitted when profile fields or the role change.
type UserUpdatedEvent struct {
	UserID    string    `json:"user_id"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *UserUpdatedEvent) EventType() string     { return "account.updated" }
func (e *UserUpdatedEvent) AggregateID() string   { return e.UserID }
func (e *UserUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// PasswordChangedEvent carries no secret material.
type PasswordChangedEvent struct {
	UserID    string    `json:"user_id"`
	ChangedAt time.Time `json:"changed_at"`
}

func (e *PasswordChangedEvent) EventType() string     { return "account.password_changed" }
func (e *PasswordChangedEvent) AggregateID() string   { return e.UserID }
func (e *PasswordChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// PasswordResetRequestedEvent is picked up by the mail sender downstream of the outbox.
type PasswordResetRequestedEvent struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	RequestedAt time.Time `json:"requested_at"`
}

func (e *PasswordResetRequestedEvent) EventType() string     { return "account.password_reset_requested" }
func (e *PasswordResetRequestedEvent) AggregateID() string   { return e.UserID }
func (e *PasswordResetRequestedEvent) OccurredAt() time.Time { return e.RequestedAt }

// UserDeletedEvent is emitted when an admin removes an account.
type UserDeletedEvent struct {
	UserID    string    `json:"user_id"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

func (e *UserDeletedEvent) EventType() string     { return "account.deleted" }
func (e *UserDeletedEvent) AggregateID() string   { return e.UserID }
func (e *UserDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }
