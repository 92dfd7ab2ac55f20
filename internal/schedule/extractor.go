// Package schedule finds the week's row in the maintenance schedule and turns
// its free-text names cell into individual names.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultNamesColumn is the schedule column holding the volunteer names.
// Columns: date, activities (three), household count, names.
const DefaultNamesColumn = 5

// ErrNamesColumnMissing is returned when the located row has no names cell.
var ErrNamesColumnMissing = errors.New("names information not found in sheet")

// NamesFieldError carries the row that lacked a names cell. Its message is
// the text sent to the administrator.
type NamesFieldError struct {
	Row   []string
	Index int
}

func (e *NamesFieldError) Error() string {
	if e.Row == nil {
		return fmt.Sprintf("Names information not found in sheet. row: <none>, index: %d", e.Index)
	}
	return fmt.Sprintf("Names information not found in sheet. row: %q", e.Row)
}

// Unwrap lets callers match with errors.Is(err, ErrNamesColumnMissing).
func (e *NamesFieldError) Unwrap() error {
	return ErrNamesColumnMissing
}

// LocateRow returns the first row whose date cell equals target. Leading
// zeros are ignored on both sides so "5-07" and "05-07" are the same day.
func LocateRow(rows [][]string, target string) ([]string, bool) {
	want := strings.TrimLeft(strings.TrimSpace(target), "0")
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if strings.TrimLeft(strings.TrimSpace(row[0]), "0") == want {
			return row, true
		}
	}
	return nil, false
}

// ExtractNamesField returns the names cell at index. A row that is too short
// yields an empty string and a *NamesFieldError; it never panics.
func ExtractNamesField(row []string, index int) (string, error) {
	if index < 0 || index >= len(row) {
		return "", &NamesFieldError{Row: row, Index: index}
	}
	return row[index], nil
}

var nameSeparators = regexp.MustCompile(`,| en |/|\.`)

// SplitNames splits a names cell on commas, the word " en ", slashes and
// periods, trimming each name and dropping empty ones. Order is preserved.
func SplitNames(field string) []string {
	parts := nameSeparators.Split(field, -1)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
