package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/testutil"
)

// fakeSheetsAPI records the calls the writer makes against the Sheets REST API.
type fakeSheetsAPI struct {
	updates       []sheets.ValueRange
	batchRequests []*sheets.Request
	paths         []string
	mu            sync.Mutex
	failUpdates   int
	failCode      int
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v4/spreadsheets":
		_, _ = w.Write([]byte(`{"spreadsheetId":"created","spreadsheetUrl":"https://example.test/created"}`))

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/"):
		id := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/")
		_, _ = w.Write([]byte(`{"spreadsheetId":"` + id + `","sheets":[{"properties":{"sheetId":7,"title":"Transactions"}}]}`))

	case strings.HasSuffix(r.URL.Path, ":clear"):
		_, _ = w.Write([]byte(`{}`))

	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.batchRequests = append(f.batchRequests, req.Requests...)
		_, _ = w.Write([]byte(`{}`))

	case r.Method == http.MethodPut:
		if f.failUpdates > 0 {
			f.failUpdates--
			w.WriteHeader(f.failCode)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"nope"}}`, f.failCode)
			return
		}
		var vr sheets.ValueRange
		_ = json.NewDecoder(r.Body).Decode(&vr)
		f.updates = append(f.updates, vr)
		_, _ = w.Write([]byte(`{}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeSheetsAPI) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.paths {
		if strings.HasPrefix(p, "PUT ") {
			n++
		}
	}
	return n
}

func newTestWriter(t *testing.T, api *fakeSheetsAPI, cfg Config) *Writer {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	return NewWriterWithService(cfg, svc, common.DiscardLogger())
}

func testReport(t *testing.T) Report {
	t.Helper()
	day := testutil.DefaultDate
	tl := testutil.NewLedger(t, testutil.LedgerOptions{
		Now:          day,
		Transactions: testutil.FixtureMonth.Transactions(day),
	})
	return NewReport(tl.Store.Transactions(), day, time.UTC)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ServiceAccountPath = "/unused.json"
	cfg.RetryDelay = time.Millisecond
	cfg.MaxRetryDelay = 5 * time.Millisecond
	return cfg
}

func TestNewReport_SummaryCoversExportedRows(t *testing.T) {
	day := testutil.DefaultDate
	all := testutil.FixtureMonth.Transactions(day)
	expenses := ledger.ApplyFilter(all, ledger.Filter{Type: ledger.FilterExpense})

	report := NewReport(expenses, day, time.UTC)
	assert.Len(t, report.Transactions, len(expenses))
	assert.Equal(t, len(expenses), report.Summary.Count)
	assert.Zero(t, report.Summary.TotalIncome)
	assert.Empty(t, report.Summary.IncomeByCategory)
	assert.InDelta(t, ledger.SumByType(expenses, model.TypeExpense), report.Summary.TotalExpense, 0.0001)
	assert.InDelta(t, -report.Summary.TotalExpense, report.Summary.Balance, 0.0001)
}

func TestPrepareReportData(t *testing.T) {
	report := testReport(t)
	values := prepareReportData(report)

	assert.Equal(t, "Accountant", values[0][0])
	assert.Equal(t, []any{"Total Income", 3400.0}, values[3])
	assert.Equal(t, []any{"Total Expense", 1405.0}, values[4])
	assert.Equal(t, []any{"Balance", 1995.0}, values[5])

	// breakdown is largest first
	assert.Equal(t, "Bills", values[summaryRows+2][0])

	start := int(transactionTableStart(report.Summary))
	assert.Equal(t, []any{"Date", "Name", "Category", "Type", "Amount"}, values[start-1])
	assert.Len(t, values, start+len(report.Transactions))

	first := values[start]
	assert.Equal(t, "2025-11-03", first[0])
	assert.Equal(t, "Dinner", first[1])
	assert.Equal(t, "Expense", first[3])
	assert.InDelta(t, 14.5, first[4], 0.0001)

	// the sheet stores raw text, no CSV quoting
	last := values[len(values)-1]
	assert.Equal(t, "Paycheck", last[1])
	for _, row := range values[start:] {
		if row[1] == "Rent, Nov" {
			return
		}
	}
	t.Error("description with comma should be written unquoted")
}

func TestWriter_WriteToExistingSpreadsheet(t *testing.T) {
	api := &fakeSheetsAPI{}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing"
	cfg.BatchSize = 10
	w := newTestWriter(t, api, cfg)

	report := testReport(t)
	require.NoError(t, w.Write(context.Background(), report))

	total := 0
	for _, u := range api.updates {
		total += len(u.Values)
	}
	assert.Equal(t, len(prepareReportData(report)), total)
	assert.Greater(t, len(api.updates), 1, "values are split into batches")

	assert.NotEmpty(t, api.batchRequests, "formatting applied")
	for _, req := range api.batchRequests {
		if req.RepeatCell != nil {
			assert.Equal(t, int64(7), req.RepeatCell.Range.SheetId)
		}
	}
	assert.NotContains(t, api.paths, "POST /v4/spreadsheets", "existing spreadsheet is reused")
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	api := &fakeSheetsAPI{}
	cfg := testConfig()
	cfg.EnableFormatting = false
	w := newTestWriter(t, api, cfg)

	require.NoError(t, w.Write(context.Background(), testReport(t)))
	require.NotEmpty(t, api.paths)
	assert.Equal(t, "POST /v4/spreadsheets", api.paths[0])
	assert.Contains(t, strings.Join(api.paths, "\n"), "/v4/spreadsheets/created/values/")
	assert.Empty(t, api.batchRequests)
}

func TestWriter_RetriesRateLimit(t *testing.T) {
	api := &fakeSheetsAPI{failUpdates: 1, failCode: http.StatusTooManyRequests}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing"
	w := newTestWriter(t, api, cfg)

	require.NoError(t, w.Write(context.Background(), testReport(t)))
	assert.GreaterOrEqual(t, api.putCount(), 2)
}

func TestWriter_DoesNotRetryClientErrors(t *testing.T) {
	api := &fakeSheetsAPI{failUpdates: 5, failCode: http.StatusForbidden}
	cfg := testConfig()
	cfg.SpreadsheetID = "existing"
	w := newTestWriter(t, api, cfg)

	err := w.Write(context.Background(), testReport(t))
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrMaxRetries))
	assert.Equal(t, 1, api.putCount())
}

func TestWriter_EmptyReport(t *testing.T) {
	w := newTestWriter(t, &fakeSheetsAPI{}, testConfig())
	err := w.Write(context.Background(), Report{})
	assert.ErrorIs(t, err, common.ErrNoTransactions)
}

func TestClassifyAPIError(t *testing.T) {
	assert.NoError(t, classifyAPIError(nil))

	plain := errors.New("network down")
	assert.Equal(t, plain, classifyAPIError(plain))
	limited := classifyAPIError(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, limited, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(limited))

	forbidden := classifyAPIError(&googleapi.Error{Code: http.StatusForbidden})
	assert.False(t, common.IsRetryable(forbidden))
	var re *common.RetryableError
	assert.True(t, errors.As(forbidden, &re))

	serverErr := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, error(serverErr), classifyAPIError(serverErr))
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	boom := errors.New("boom")
	m.WriteFunc = func(context.Context, Report) error { return boom }

	var rw ReportWriter = m
	assert.ErrorIs(t, rw.Write(context.Background(), Report{}), boom)
	assert.Equal(t, 1, m.WriteCallCount)
	require.NotNil(t, m.LastReport)

	m.Reset()
	assert.Zero(t, m.WriteCallCount)
	assert.Nil(t, m.LastReport)
}
