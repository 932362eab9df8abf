package sproc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/mgutz/str"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Payload is an inbound request payload which remembers the order fields
// were received in. It implements Request.
type Payload struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

// NewPayload creates an empty payload.
func NewPayload() *Payload {
	return &Payload{fields: orderedmap.New[string, interface{}]()}
}

// ParsePayload reads a JSON object from r.
func ParsePayload(r io.Reader) (*Payload, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := NewPayload()
	if err := p.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Payload) ordered() *orderedmap.OrderedMap[string, interface{}] {
	if p.fields == nil {
		p.fields = orderedmap.New[string, interface{}]()
	}
	return p.fields
}

// Set sets a field. An existing field keeps its position.
func (p *Payload) Set(key string, value interface{}) *Payload {
	p.ordered().Set(key, value)
	return p
}

// Get returns the value of a field.
func (p *Payload) Get(key string) (interface{}, bool) {
	return p.ordered().Get(key)
}

// Del removes a field.
func (p *Payload) Del(key string) {
	p.ordered().Delete(key)
}

// Len returns the number of fields.
func (p *Payload) Len() int {
	return p.ordered().Len()
}

// Keys returns the field names in order.
func (p *Payload) Keys() []string {
	keys := make([]string, 0, p.Len())
	for pair := p.ordered().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns a copy of the fields suitable for binding named placeholders.
func (p *Payload) Map() map[string]interface{} {
	m := make(map[string]interface{}, p.Len())
	for pair := p.ordered().Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// FieldNamesExcluding implements Request.
func (p *Payload) FieldNamesExcluding(names ...string) []string {
	var fields []string
	for pair := p.ordered().Oldest(); pair != nil; pair = pair.Next() {
		if str.SliceContains(names, pair.Key) {
			continue
		}
		fields = append(fields, pair.Key)
	}
	return fields
}

// MarshalJSON writes fields in order.
func (p *Payload) MarshalJSON() ([]byte, error) {
	return p.ordered().MarshalJSON()
}

// UnmarshalJSON reads a JSON object keeping the order of its keys. Anything
// after the object is an error.
func (p *Payload) UnmarshalJSON(b []byte) error {
	p.fields = orderedmap.New[string, interface{}]()

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) == 0 || b[0] != '{' {
		return fmt.Errorf("payload must be a JSON object")
	}

	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(b, raw); err != nil {
		return err
	}
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		value, err := decodeValue(pair.Value)
		if err != nil {
			return fmt.Errorf("payload field %q: %w", pair.Key, err)
		}
		p.fields.Set(pair.Key, value)
	}
	return nil
}

func decodeValue(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	return normalizeNumber(value), nil
}

// normalizeNumber converts json.Number to int64 or float64 so drivers
// receive numeric bind values.
func normalizeNumber(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
