package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

type binaryCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("status", "pending") generates "status = @p0"
func Eq(field string, value interface{}) Condition {
	return &binaryCondition{field: field, op: "=", value: value}
}

// Lt creates a strict less-than condition.
// Example: Lt("processed_at", cutoff) generates "processed_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &binaryCondition{field: field, op: "<", value: value}
}

func (c *binaryCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// In matches any element of an array parameter.
// Example: In("order_id", []string{"a", "b"}) generates "order_id IN UNNEST(@p0)"
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.values,
	}
}
