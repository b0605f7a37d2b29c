package dataset

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"plotkit/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
)

var log = logger.Component("dataset")

// LoadCSV reads a CSV file with a header row
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug("Loaded CSV", logger.Fields{"path": path, "rows": ds.Len(), "columns": len(ds.Columns())})
	return ds, nil
}

// LoadXLSX reads one sheet of an Excel workbook. An empty sheet name picks
// the first sheet. The first row is the header.
func LoadXLSX(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	ds, err := readWorkbook(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ds, nil
}

func readWorkbook(f *excelize.File, sheet string) (*Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	// GetRows trims trailing empty cells; pad every row to the header width
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	log.Debug("Read sheet", logger.Fields{"sheet": sheet, "rows": len(records) - 1})
	return FromRecords(records)
}

// Load picks a loader from the source: http(s) URLs are fetched, .xlsx files
// are read as workbooks, anything else as CSV
func Load(ctx context.Context, fetcher *Fetcher, source string) (*Dataset, error) {
	if isURL(source) {
		if fetcher == nil {
			fetcher = NewFetcher(30*time.Second, 3)
		}
		return fetcher.Fetch(ctx, source)
	}
	if isWorkbook(source) {
		return LoadXLSX(source, "")
	}
	return LoadCSV(source)
}

// Fetcher downloads datasets over HTTP
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a fetcher with the given timeout and retry count
func NewFetcher(timeout time.Duration, retries int) *Fetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(retries)
	client.SetRetryWaitTime(2 * time.Second)

	return &Fetcher{client: client}
}

// NewFetcherWithClient wraps an existing resty client
func NewFetcherWithClient(client *resty.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads a CSV or XLSX document and parses it
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Dataset, error) {
	log.Info("Fetching dataset", logger.Fields{"url": url})

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode())
	}

	body := resp.Body()
	if isWorkbook(url) || strings.Contains(resp.Header().Get("Content-Type"), "spreadsheetml") {
		wb, err := excelize.OpenReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook from %s: %w", url, err)
		}
		defer wb.Close()
		return readWorkbook(wb, "")
	}

	ds, err := ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	log.Debug("Fetched dataset", logger.Fields{"url": url, "rows": ds.Len(), "bytes": len(body)})
	return ds, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func isWorkbook(source string) bool {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".xlsx" || ext == ".xlsm"
}
