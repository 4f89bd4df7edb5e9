package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/sarpras/internal/config"
)

// Repository is the spreadsheet export destination: a report table can be
// pushed into a shared Google Sheet instead of downloaded as a file.
type Repository interface {
	Overwrite(ctx context.Context, sheetRange string, values [][]interface{}) error
}

// GoogleSheetRepository implements Repository using the official Google
// Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// Overwrite clears the target range and writes the provided table into it,
// header row included.
func (r *GoogleSheetRepository) Overwrite(ctx context.Context, sheetRange string, values [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	clearCall := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, sheetRange, &sheetsapi.ClearValuesRequest{}).Context(ctx)
	if _, err := clearCall.Do(); err != nil {
		return fmt.Errorf("clear range %s: %w", sheetRange, err)
	}

	payload := &sheetsapi.ValueRange{Values: values}
	updateCall := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := updateCall.Do(); err != nil {
		return fmt.Errorf("write %d rows into range %s: %w", len(values), sheetRange, err)
	}

	r.logger.Debug("report written to sheet", zap.String("range", sheetRange), zap.Int("rows", len(values)))
	return nil
}
