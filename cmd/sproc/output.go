package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mgutz/sproc"
	"github.com/olekukonko/tablewriter"
)

func writeRows(w io.Writer, rows sproc.Rows, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if rows.IsEmpty() {
		_, err := fmt.Fprintln(w, "No rows")
		return err
	}

	columns := columnsOf(rows)
	table := tablewriter.NewWriter(w)
	table.SetHeader(columns)
	table.SetBorder(false)

	rows.Each(func(_ int, rec sproc.Record) bool {
		line := make([]string, len(columns))
		for i, col := range columns {
			v, ok := rec[col]
			if !ok || v == nil {
				line[i] = "NULL"
				continue
			}
			line[i] = fmt.Sprint(v)
		}
		table.Append(line)
		return true
	})

	table.Render()
	return nil
}

// columnsOf returns the sorted union of column names.
func columnsOf(rows sproc.Rows) []string {
	seen := map[string]bool{}
	var columns []string
	for _, rec := range rows {
		for col := range rec {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}
	sort.Strings(columns)
	return columns
}
