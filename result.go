package sproc

import (
	"encoding/json"
)

// Record is a single row keyed by column name.
type Record map[string]interface{}

// Rows is the ordered collection of records returned by a stored procedure.
// Rows returned by this package are never nil.
type Rows []Record

// NewRows wraps records. A nil or empty input becomes an empty collection.
func NewRows(records []Record) Rows {
	if len(records) == 0 {
		return Rows{}
	}
	return Rows(records)
}

// Count returns the number of records.
func (r Rows) Count() int {
	return len(r)
}

// IsEmpty returns true if there are no records.
func (r Rows) IsEmpty() bool {
	return len(r) == 0
}

// First returns the first record.
func (r Rows) First() (Record, bool) {
	if len(r) == 0 {
		return nil, false
	}
	return r[0], true
}

// Pluck returns the values of column for every record, in order. Records
// without the column contribute nil.
func (r Rows) Pluck(column string) []interface{} {
	values := make([]interface{}, len(r))
	for i, rec := range r {
		values[i] = rec[column]
	}
	return values
}

// Each calls fn for every record until fn returns false.
func (r Rows) Each(fn func(i int, rec Record) bool) {
	for i, rec := range r {
		if !fn(i, rec) {
			return
		}
	}
}

// Filter returns the records for which fn returns true.
func (r Rows) Filter(fn func(rec Record) bool) Rows {
	filtered := Rows{}
	for _, rec := range r {
		if fn(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// MarshalJSON always writes an array, `[]` when empty.
func (r Rows) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal([]Record(r))
}
