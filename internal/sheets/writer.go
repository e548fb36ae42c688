package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/export"
	"github.com/Veraticus/accountant/internal/ledger"
)

// Writer implements ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewWriterWithService(config, service, logger), nil
}

// NewWriterWithService creates a writer around an existing API client.
func NewWriterWithService(config Config, service *sheets.Service, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SheetTitle == "" {
		config.SheetTitle = DefaultSheetTitle
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}
	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}
}

// Write replaces the contents of the configured sheet with report.
func (w *Writer) Write(ctx context.Context, report Report) error {
	if len(report.Transactions) == 0 {
		return common.ErrNoTransactions
	}

	w.logger.Info("starting sheets export", "transactions", len(report.Transactions))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     w.config.MaxRetryDelay,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return classifyAPIError(w.clearSheet(ctx, spreadsheetID))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareReportData(report)

	err = common.WithRetry(ctx, func() error {
		return classifyAPIError(w.writeData(ctx, spreadsheetID, values))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, report))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// classifyAPIError marks rate limiting for WithRetry and stops retries on
// client errors that will not succeed on a second attempt.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}
	return err
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		if token.RefreshToken == "" {
			saved, err := LoadToken(config.TokenFile)
			if err != nil {
				return nil, fmt.Errorf("no refresh token configured and none saved (run `accountant auth sheets`): %w", err)
			}
			token = saved
		}
		tokenSource = oauthConfig(config, "").TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the configured spreadsheet, creating one when
// no ID is set.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: w.config.SheetTitle,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

func (w *Writer) sheetRange(cells string) string {
	return fmt.Sprintf("'%s'!%s", w.config.SheetTitle, cells)
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, w.sheetRange("A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// Layout of the rows produced by prepareReportData.
const (
	summaryRows = 9 // title, blank, section, 5 totals, blank
)

// prepareReportData lays out the summary block, the expense breakdown and the
// transaction table.
func prepareReportData(report Report) [][]any {
	sum := report.Summary
	estimatedRows := summaryRows + 3 + len(sum.ExpenseByCategory) + 3 + len(report.Transactions)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"Accountant", report.GeneratedAt.Format("Jan 2, 2006 15:04")},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Income", sum.TotalIncome},
		[]any{"Total Expense", sum.TotalExpense},
		[]any{"Balance", sum.Balance},
		[]any{"Today's Balance", sum.TodayBalance},
		[]any{"Transactions", sum.Count},
		[]any{},
		[]any{"Expenses by Category"},
		[]any{"Category", "Amount", "Share"},
	)

	for _, ct := range sum.ExpenseByCategory {
		values = append(values, []any{ct.Category, ct.Amount, fmt.Sprintf("%.1f%%", ct.Share)})
	}

	header := make([]any, len(export.Header))
	for i, h := range export.Header {
		header[i] = h
	}
	values = append(values,
		[]any{},
		[]any{"Transactions"},
		header,
	)

	for _, txn := range report.Transactions {
		row := export.Row(txn)
		values = append(values, []any{row[0], row[1], row[2], row[3], txn.Amount})
	}

	return values
}

// transactionTableStart returns the zero-based row index of the first
// transaction row in the data built by prepareReportData.
func transactionTableStart(summary ledger.Summary) int64 {
	return int64(summaryRows + 2 + len(summary.ExpenseByCategory) + 3)
}

// writeData writes values in batches to stay within API request limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, w.sheetRange(fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (w *Writer) sheetID(ctx context.Context, spreadsheetID string) (int64, error) {
	ss, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == w.config.SheetTitle {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet %s", w.config.SheetTitle, spreadsheetID)
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, report Report) error {
	sheetID, err := w.sheetID(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	tableStart := transactionTableStart(report.Summary)
	tableEnd := tableStart + int64(len(report.Transactions))
	pattern := w.config.CurrencyPattern
	if pattern == "" {
		pattern = DefaultConfig().CurrencyPattern
	}

	currency := func(start, end, col int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    start,
					EndRowIndex:      end,
					StartColumnIndex: col,
					EndColumnIndex:   col + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: pattern,
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		}
	}

	bold := func(row int64, size int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    row,
					EndRowIndex:      row + 1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(len(export.Header)),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: size,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	requests := []*sheets.Request{
		bold(0, 16),
		bold(2, 11),
		bold(summaryRows, 11),
		bold(tableStart-1, 11),
		currency(3, 7, 1),
		currency(summaryRows+2, summaryRows+2+int64(len(report.Summary.ExpenseByCategory)), 1),
		currency(tableStart, tableEnd, 4),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(export.Header)),
				},
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err = w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
