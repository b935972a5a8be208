package ratesfeed

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mkravets/fx_exchange_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// The ECB publishes euro reference rates as zipped CSV files: a single-row
// daily file and a full history. Both share the column layout
// "Date, USD, JPY, ..." with EUR implicit as the base.
const (
	// DefaultLatestURL is the ECB daily reference-rate feed.
	DefaultLatestURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref.zip"
	// DefaultHistoryURL is the ECB full historical reference-rate feed.
	DefaultHistoryURL = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist.zip"

	baseCode = "EUR"

	// The daily file dates rows like "03 June 2021"; the history file uses
	// ISO dates.
	dailyDateLayout = "02 January 2006"
)

// ECBClient fetches and parses the ECB euro reference-rate feeds. It
// implements the feeds.RateFeed port.
type ECBClient struct {
	http       *http.Client
	latestURL  string
	historyURL string
}

// NewECBClient creates a client over the given endpoints. Pass the default
// URLs for the public ECB feeds.
func NewECBClient(httpClient *http.Client, latestURL, historyURL string) *ECBClient {
	return &ECBClient{http: httpClient, latestURL: latestURL, historyURL: historyURL}
}

// FetchLatest retrieves the daily feed and returns its single snapshot.
func (c *ECBClient) FetchLatest(ctx context.Context) (domain.RateSnapshot, error) {
	snapshots, err := c.fetch(ctx, c.latestURL)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	if len(snapshots) == 0 {
		return domain.RateSnapshot{}, fmt.Errorf("ecb daily feed contained no dated rate rows")
	}
	// Newest last after sorting; the daily file normally has exactly one row.
	return snapshots[len(snapshots)-1], nil
}

// FetchHistory retrieves the full historical feed, oldest snapshot first.
func (c *ECBClient) FetchHistory(ctx context.Context) ([]domain.RateSnapshot, error) {
	return c.fetch(ctx, c.historyURL)
}

func (c *ECBClient) fetch(ctx context.Context, url string) ([]domain.RateSnapshot, error) {
	csvData, err := c.getUnzipped(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseReferenceCSV(csvData)
}

// getUnzipped downloads the zip archive at url and returns the contents of
// the first file inside it.
func (c *ECBClient) getUnzipped(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate feed %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching rate feed %q", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate feed body: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open rate feed archive: %w", err)
	}
	if len(archive.File) == 0 {
		return nil, fmt.Errorf("rate feed archive %q is empty", url)
	}

	file, err := archive.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open archived rate file: %w", err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived rate file: %w", err)
	}
	return contents, nil
}

// parseReferenceCSV turns ECB reference CSV contents into snapshots, oldest
// first. Columns whose header is not a catalog currency are skipped, as are
// cells that do not parse as a decimal ("N/A", blanks). EUR, the implicit
// base of the feed, is inserted into every snapshot with rate 1.
func parseReferenceCSV(data []byte) ([]domain.RateSnapshot, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // rows carry a trailing comma

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate feed csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("rate feed csv has no header row")
	}

	// headers[i] holds the currency code for column i, "" for the date
	// column and for columns outside the catalog.
	headers := make([]string, len(records[0]))
	dateColumn := -1
	for i, header := range records[0] {
		header = strings.TrimSpace(header)
		if header == "Date" {
			dateColumn = i
			continue
		}
		if _, err := domain.LookupCurrency(header); err == nil {
			headers[i] = header
		}
	}
	if dateColumn == -1 {
		return nil, fmt.Errorf("rate feed csv has no Date column")
	}

	snapshots := make([]domain.RateSnapshot, 0, len(records)-1)
	for _, row := range records[1:] {
		if dateColumn >= len(row) {
			continue
		}
		date, err := parseFeedDate(strings.TrimSpace(row[dateColumn]))
		if err != nil {
			continue
		}

		rates := map[string]decimal.Decimal{
			baseCode: decimal.NewFromInt(1),
		}
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			rate, err := decimal.NewFromString(strings.TrimSpace(cell))
			if err != nil {
				continue
			}
			rates[headers[i]] = rate
		}

		snapshots = append(snapshots, domain.RateSnapshot{
			BaseCode:      baseCode,
			EffectiveDate: date,
			Rates:         rates,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].EffectiveDate.Before(snapshots[j].EffectiveDate)
	})
	return snapshots, nil
}

func parseFeedDate(value string) (time.Time, error) {
	if date, err := time.Parse(time.DateOnly, value); err == nil {
		return date, nil
	}
	return time.Parse(dailyDateLayout, value)
}
