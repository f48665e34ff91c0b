package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// catalogTable renders one of the fixed catalog views (sessions, frames,
// runs). Cells are typed: int cells are frame counts or gains and their
// columns right-align; measure cells are unit-suffixed values like "300s"
// that align with them; everything else stays left-aligned text.
type catalogTable struct {
	tw      table.Writer
	columns int
	numeric []bool
}

// measure is a unit-suffixed numeric cell, e.g. an exposure of "300s".
type measure string

func newCatalogTable(headers ...string) *catalogTable {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	return &catalogTable{tw: tw, columns: len(headers), numeric: make([]bool, len(headers))}
}

func (ct *catalogTable) addRow(cells ...any) {
	row := make(table.Row, ct.columns)
	for i := 0; i < ct.columns; i++ {
		if i >= len(cells) {
			row[i] = ""
			continue
		}
		switch v := cells[i].(type) {
		case int:
			row[i] = strconv.Itoa(v)
			ct.numeric[i] = true
		case measure:
			row[i] = string(v)
			ct.numeric[i] = true
		default:
			row[i] = v
		}
	}
	ct.tw.AppendRow(row)
}

func (ct *catalogTable) render() string {
	configs := make([]table.ColumnConfig, 0, ct.columns)
	for i, numeric := range ct.numeric {
		align := text.AlignLeft
		if numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	ct.tw.SetColumnConfigs(configs)

	return ct.tw.Render()
}
