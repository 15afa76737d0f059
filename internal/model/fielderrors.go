package model

import "sort"

// FieldErrors collects every violated constraint from a single validation
// pass, keyed by field name. A nil or empty map means the input is valid.
type FieldErrors map[string][]string

// Add appends a violation message for the named field.
func (fieldErrors FieldErrors) Add(fieldName string, message string) {
	fieldErrors[fieldName] = append(fieldErrors[fieldName], message)
}

// Empty reports whether no field violated its constraints.
func (fieldErrors FieldErrors) Empty() bool {
	return len(fieldErrors) == 0
}

// Fields returns the violated field names in deterministic order.
func (fieldErrors FieldErrors) Fields() []string {
	fieldNames := make([]string, 0, len(fieldErrors))
	for fieldName := range fieldErrors {
		fieldNames = append(fieldNames, fieldName)
	}
	sort.Strings(fieldNames)
	return fieldNames
}
