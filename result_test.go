package sproc

import (
	"encoding/json"
	"testing"

	"gopkg.in/stretchr/testify.v1/assert"
)

func TestNewRowsNeverNil(t *testing.T) {
	rows := NewRows(nil)
	assert.NotNil(t, rows)
	assert.True(t, rows.IsEmpty())
	assert.Equal(t, 0, rows.Count())

	_, ok := rows.First()
	assert.False(t, ok)
}

func TestRowsOrder(t *testing.T) {
	rows := NewRows([]Record{{"id": 2}, {"id": 1}, {"id": 3}})
	assert.Equal(t, 3, rows.Count())
	assert.Equal(t, []interface{}{2, 1, 3}, rows.Pluck("id"))

	first, ok := rows.First()
	assert.True(t, ok)
	assert.Equal(t, 2, first["id"])
}

func TestRowsPluckMissing(t *testing.T) {
	rows := NewRows([]Record{{"id": 1}, {"name": "x"}})
	assert.Equal(t, []interface{}{1, nil}, rows.Pluck("id"))
}

func TestRowsEachAndFilter(t *testing.T) {
	rows := NewRows([]Record{{"id": 1}, {"id": 2}, {"id": 3}})

	var seen []int
	rows.Each(func(i int, rec Record) bool {
		seen = append(seen, rec["id"].(int))
		return i < 1
	})
	assert.Equal(t, []int{1, 2}, seen)

	odd := rows.Filter(func(rec Record) bool { return rec["id"].(int)%2 == 1 })
	assert.Equal(t, 2, odd.Count())

	none := rows.Filter(func(rec Record) bool { return false })
	assert.NotNil(t, none)
	assert.True(t, none.IsEmpty())
}

func TestRowsMarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewRows(nil))
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	b, err = json.Marshal(NewRows([]Record{{"id": 1}}))
	assert.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(b))
}
