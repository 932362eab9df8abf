package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgutz/logxi"
	"github.com/mgutz/sproc"
	"gopkg.in/stretchr/testify.v1/assert"
)

func init() {
	logxi.Suppress(true)
}

func TestReadPayloadParams(t *testing.T) {
	args := &CLIArgs{Params: []string{"b=2", "a=1", "b=3"}}
	p, err := readPayload(args, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, p.Keys())
	v, _ := p.Get("b")
	assert.Equal(t, "3", v)

	_, err = readPayload(&CLIArgs{Params: []string{"nokey"}}, nil)
	assert.Error(t, err)
	_, err = readPayload(&CLIArgs{Params: []string{"=1"}}, nil)
	assert.Error(t, err)
}

func TestReadPayloadStdin(t *testing.T) {
	args := &CLIArgs{Payload: "-", Params: []string{"extra=x"}}
	p, err := readPayload(args, strings.NewReader(`{"_token": "t", "id": 7}`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"_token", "id", "extra"}, p.Keys())
}

func TestReadPayloadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte(`{"id": 7}`), 0644))

	p, err := readPayload(&CLIArgs{Payload: path}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"id"}, p.Keys())
}

func TestBuildCallNamed(t *testing.T) {
	args := &CLIArgs{Procedure: "get_user", Params: []string{"_token=x", "id=7"}}
	p, _ := readPayload(args, nil)

	call, err := buildCall(sproc.New(nil), args, p)
	assert.NoError(t, err)
	sql, values := call.ToSQL()
	assert.Equal(t, "CALL get_user (:id);", sql)
	assert.Equal(t, []interface{}{map[string]interface{}{"_token": "x", "id": "7"}}, values)
}

func TestBuildCallRaw(t *testing.T) {
	args := &CLIArgs{Procedure: "add", Tokens: []string{"?", "?"}, Values: []string{"1", "2"}}
	call, err := buildCall(sproc.New(nil), args, sproc.NewPayload())
	assert.NoError(t, err)
	sql, values := call.ToSQL()
	assert.Equal(t, "CALL add (?, ?);", sql)
	assert.Equal(t, []interface{}{"1", "2"}, values)
}

func TestBuildCallRejectsMixedModes(t *testing.T) {
	args := &CLIArgs{Procedure: "add", Tokens: []string{"?"}}
	_, err := buildCall(sproc.New(nil), args, sproc.NewPayload().Set("a", 1))
	assert.Error(t, err)
}

func TestWriteRowsTable(t *testing.T) {
	var buf bytes.Buffer
	rows := sproc.NewRows([]sproc.Record{
		{"id": int64(1), "name": "Mario"},
		{"id": int64(2), "name": nil},
	})
	assert.NoError(t, writeRows(&buf, rows, false))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Mario")
	assert.Contains(t, out, "NULL")
	assert.True(t, strings.Index(out, "Mario") < strings.Index(out, "NULL"))
}

func TestWriteRowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, writeRows(&buf, sproc.NewRows(nil), false))
	assert.Equal(t, "No rows\n", buf.String())

	buf.Reset()
	assert.NoError(t, writeRows(&buf, sproc.NewRows(nil), true))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRowsJSON(t *testing.T) {
	var buf bytes.Buffer
	rows := sproc.NewRows([]sproc.Record{{"id": 1}})
	assert.NoError(t, writeRows(&buf, rows, true))
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]\n", buf.String())
}

func TestRunPropagatesDriverError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sproc.yaml")
	yaml := "connections:\n  main:\n    driver: sqlite\n    dsn: \":memory:\"\n    maxOpen: 1\n"
	assert.NoError(t, ioutil.WriteFile(path, []byte(yaml), 0644))

	var buf bytes.Buffer
	err := run(context.Background(), &CLIArgs{Config: path, Procedure: "get_user"}, nil, &buf)
	assert.Error(t, err)
	assert.Equal(t, "", buf.String())
}
