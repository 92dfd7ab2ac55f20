package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXSource reads one sheet of a local workbook. Range accepts A1 bounds
// ("A3:F27"), row bounds ("3:27"), column bounds ("A:D") or nothing for the
// whole sheet.
type XLSXSource struct {
	Path   string
	Sheet  string
	Range  string
	Logger *zap.Logger
}

type bounds struct {
	minCol, minRow, maxCol, maxRow int // 1-based, 0 = open
}

// Fetch opens the workbook and returns the rows inside Range.
func (s *XLSXSource) Fetch(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	b, err := parseBounds(s.Range)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var rows [][]string
	for i, row := range all {
		rowNo := i + 1
		if b.minRow > 0 && rowNo < b.minRow {
			continue
		}
		if b.maxRow > 0 && rowNo > b.maxRow {
			break
		}
		rows = append(rows, trimTrailingEmpty(b.columns(row)))
	}

	logger.Debug("Read workbook sheet",
		zap.String("path", s.Path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)))
	return rows, nil
}

func (b bounds) columns(row []string) []string {
	start := 0
	if b.minCol > 0 {
		start = b.minCol - 1
	}
	end := len(row)
	if b.maxCol > 0 && b.maxCol < end {
		end = b.maxCol
	}
	if start >= end {
		return []string{}
	}
	return append([]string(nil), row[start:end]...)
}

func parseBounds(rng string) (bounds, error) {
	var b bounds
	rng = strings.TrimSpace(rng)
	if rng == "" {
		return b, nil
	}

	parts := strings.Split(rng, ":")
	if len(parts) > 2 {
		return b, fmt.Errorf("invalid range %q", rng)
	}
	lo, hi := parts[0], parts[0]
	if len(parts) == 2 {
		hi = parts[1]
	}

	var err error
	if b.minCol, b.minRow, err = parseRef(lo); err != nil {
		return b, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	if b.maxCol, b.maxRow, err = parseRef(hi); err != nil {
		return b, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	return b, nil
}

// parseRef parses "B7", "7" or "B" into 1-based column and row numbers.
func parseRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	switch {
	case ref == "":
		return 0, 0, fmt.Errorf("empty reference")
	case isDigits(ref):
		row, err = strconv.Atoi(ref)
		return 0, row, err
	case isLetters(ref):
		col, err = excelize.ColumnNameToNumber(ref)
		return col, 0, err
	default:
		return excelize.CellNameToCoordinates(ref)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
