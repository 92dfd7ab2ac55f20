package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// NewGoogleService creates a read-only Sheets API client from a service
// account credentials file. Extra options are appended, so tests can point
// the client at a local endpoint.
func NewGoogleService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*sheetsapi.Service, error) {
	all := make([]option.ClientOption, 0, len(opts)+2)
	if credentialsFile != "" {
		all = append(all, option.WithCredentialsFile(credentialsFile))
	}
	all = append(all, option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	all = append(all, opts...)

	svc, err := sheetsapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return svc, nil
}

// GoogleSource reads one range of a Google spreadsheet.
type GoogleSource struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	rng           string
	logger        *zap.Logger
}

// NewGoogleSource reads rng (A1 notation, e.g. "contacts!A2:D40") from the
// spreadsheet.
func NewGoogleSource(svc *sheetsapi.Service, spreadsheetID, rng string, logger *zap.Logger) *GoogleSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSource{svc: svc, spreadsheetID: spreadsheetID, rng: rng, logger: logger}
}

// Fetch retrieves the range. Cell values are rendered with fmt.Sprint.
func (s *GoogleSource) Fetch(ctx context.Context) ([][]string, error) {
	s.logger.Debug("Fetching sheet range",
		zap.String("spreadsheet", s.spreadsheetID),
		zap.String("range", s.rng))

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from spreadsheet %s: %w", s.rng, s.spreadsheetID, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, trimTrailingEmpty(row))
	}

	s.logger.Debug("Fetched sheet range", zap.String("range", s.rng), zap.Int("rows", len(rows)))
	return rows, nil
}
