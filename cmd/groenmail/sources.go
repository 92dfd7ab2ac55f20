package main

import (
	"context"
	"fmt"

	"github.com/bartdorlandt/mail-groene-maaiers/internal/config"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/logging"
	"github.com/bartdorlandt/mail-groene-maaiers/internal/sheets"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// sourceFactory builds the configured sources, sharing one Sheets client.
type sourceFactory struct {
	cfg *config.Config
	svc *sheetsapi.Service
}

func (f *sourceFactory) service(ctx context.Context) (*sheetsapi.Service, error) {
	if f.svc != nil {
		return f.svc, nil
	}
	svc, err := sheets.NewGoogleService(ctx, f.cfg.Google.CredentialsFile)
	if err != nil {
		return nil, err
	}
	f.svc = svc
	return svc, nil
}

// build returns a Google Sheets source when a sheet ID is configured, and a
// local workbook otherwise. googleTab is the tab used for Google Sheets.
// Each fetch is bounded by the configured fetch timeout.
func (f *sourceFactory) build(ctx context.Context, sc config.SourceConfig, googleTab string) (sheets.Source, error) {
	src, err := f.source(ctx, sc, googleTab)
	if err != nil {
		return nil, err
	}
	return sheets.WithTimeout(src, f.cfg.GetFetchTimeout()), nil
}

func (f *sourceFactory) source(ctx context.Context, src config.SourceConfig, googleTab string) (sheets.Source, error) {
	log := logging.Get(logger, logging.CategorySheets)

	switch {
	case src.SheetID != "":
		svc, err := f.service(ctx)
		if err != nil {
			return nil, err
		}
		return sheets.NewGoogleSource(svc, src.SheetID, sheets.A1Range(googleTab, src.Range), log), nil
	case src.XLSXPath != "":
		return &sheets.XLSXSource{
			Path:   src.XLSXPath,
			Sheet:  src.Tab,
			Range:  src.Range,
			Logger: log,
		}, nil
	default:
		return nil, fmt.Errorf("%w: no sheet_id or xlsx_path", config.ErrInvalid)
	}
}

// schedule returns the schedule source. Google schedules keep a tab per year.
func (f *sourceFactory) schedule(ctx context.Context, year int) (sheets.Source, error) {
	return f.build(ctx, f.cfg.Schedule.SourceConfig, f.cfg.ScheduleTab(year))
}

func (f *sourceFactory) contacts(ctx context.Context) (sheets.Source, error) {
	return f.build(ctx, f.cfg.Contacts.SourceConfig, f.cfg.Contacts.Tab)
}
