// Package entity defines the domain models for the quotes feature.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Well-known column names of an intraday series after the numeric label prefix is stripped.
const (
	ColumnOpen   = "open"
	ColumnHigh   = "high"
	ColumnLow    = "low"
	ColumnClose  = "close"
	ColumnVolume = "volume"
)

// QuoteRow is one observation at one timestamp for one symbol.
type QuoteRow struct {
	Time   time.Time         // parsed from the upstream timestamp key
	Values map[string]string // column name -> raw upstream value
}

// Value は指定された列の生の値を返します。
func (r QuoteRow) Value(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// Decimal は指定された列の値を decimal として返します。
func (r QuoteRow) Decimal(column string) (decimal.Decimal, error) {
	v, ok := r.Values[column]
	if !ok {
		return decimal.Zero, fmt.Errorf("column %q not present at %s", column, r.Time.Format(time.DateTime))
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", column, v, err)
	}
	return d, nil
}

// Meta holds the upstream "Meta Data" block when the response carried one.
type Meta struct {
	Information   string
	Symbol        string
	LastRefreshed string
	Interval      string
	OutputSize    string
	TimeZone      string
}

// QuoteTable is the ordered collection of rows for one (symbol, interval) pair.
// Row order is the upstream key order; nothing is re-sorted locally.
type QuoteTable struct {
	Symbol   string
	Interval string
	Columns  []string // 初出順
	Rows     []QuoteRow
	Meta     Meta
}

// EmptyQuoteTable returns a table with no rows for the given pair.
func EmptyQuoteTable(symbol, interval string) QuoteTable {
	return QuoteTable{
		Symbol:   symbol,
		Interval: interval,
		Columns:  []string{},
		Rows:     []QuoteRow{},
	}
}

// Len は行数を返します。
func (t QuoteTable) Len() int { return len(t.Rows) }

// Empty reports whether the table has no rows.
func (t QuoteTable) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether name is one of the table's columns.
func (t QuoteTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Head は先頭 n 行だけを持つテーブルを返します。元のテーブルは変更しません。
func (t QuoteTable) Head(n int) QuoteTable {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := t
	out.Rows = append([]QuoteRow(nil), t.Rows[:n]...)
	out.Columns = append([]string(nil), t.Columns...)
	return out
}

// Point is one (time, value) pair of a single column.
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}

// Series returns the values of column in table order.
// Rows that do not carry the column are skipped; an unparsable value is an error.
func (t QuoteTable) Series(column string) ([]Point, error) {
	out := make([]Point, 0, len(t.Rows))
	for _, r := range t.Rows {
		if _, ok := r.Values[column]; !ok {
			continue
		}
		d, err := r.Decimal(column)
		if err != nil {
			return nil, err
		}
		out = append(out, Point{Time: r.Time, Value: d})
	}
	return out, nil
}

// Latest は先頭行（upstream の並び順で最初の行）を返します。
func (t QuoteTable) Latest() (QuoteRow, bool) {
	if len(t.Rows) == 0 {
		return QuoteRow{}, false
	}
	return t.Rows[0], true
}
