// Package sheets provides the tabular data sources the schedule and contact
// lists are read from. Every source yields plain rows of strings; trailing
// empty cells are dropped, the way the Google Sheets API returns them.
package sheets

import (
	"context"
	"strings"
	"time"
)

// Source fetches an ordered table of rows.
type Source interface {
	Fetch(ctx context.Context) ([][]string, error)
}

// StaticSource serves rows held in memory.
type StaticSource struct {
	Rows [][]string
	Err  error
}

// Fetch returns a copy of the rows, or Err when set.
func (s *StaticSource) Fetch(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// timeoutSource bounds every fetch of the wrapped source.
type timeoutSource struct {
	src     Source
	timeout time.Duration
}

// WithTimeout bounds each Fetch of src by d. A non-positive d returns src.
func WithTimeout(src Source, d time.Duration) Source {
	if d <= 0 {
		return src
	}
	return &timeoutSource{src: src, timeout: d}
}

func (s *timeoutSource) Fetch(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.src.Fetch(ctx)
}

// A1Range builds a "tab!range" reference. An empty tab or range is left out.
func A1Range(tab, rng string) string {
	switch {
	case tab == "":
		return rng
	case rng == "":
		return quoteTab(tab)
	default:
		return quoteTab(tab) + "!" + rng
	}
}

func quoteTab(tab string) string {
	if strings.ContainsAny(tab, " '!") {
		return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	return tab
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	return row[:end]
}
