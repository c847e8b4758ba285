package m_user

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the users table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a user. The unique email index
// rejects duplicates at commit.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.UserID,
			data.Email,
			data.Name,
			data.Role,
			data.PasswordHash,
			data.Version,
			data.CreatedAt,
			data.UpdatedAt,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific user fields.
func (m *Model) UpdateMut(userID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := []string{UserID}
	values := []interface{}{userID}
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a Spanner mutation for deleting a user.
func (m *Model) DeleteMut(userID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{userID})
}
