package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultHTTPTimeout = 10 * time.Second

// Set is the set of public-holiday dates (YYYY-MM-DD) for one year
type Set map[string]struct{}

// NewSet builds a Set from a list of ISO date strings
func NewSet(dates []string) Set {
	set := make(Set, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether the ISO date string is a holiday
func (s Set) Contains(date string) bool {
	_, ok := s[date]
	return ok
}

// Dates returns the set as a list of ISO date strings
func (s Set) Dates() []string {
	dates := make([]string, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	return dates
}

// Provider fetches the holiday set for a year from an external source
type Provider interface {
	Fetch(ctx context.Context, year int) (Set, error)
}

// publicHoliday is the provider response item; only the date matters
type publicHoliday struct {
	Date string `json:"date"`
}

// HTTPProvider fetches public holidays from a Nager.Date style API:
// GET {base}/api/v3/PublicHolidays/{year}/{country} returns a JSON
// array of objects carrying at least a "date" field.
type HTTPProvider struct {
	baseURL    string
	country    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPProvider creates a provider for the given API base URL and
// ISO country code
func NewHTTPProvider(baseURL, country string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	if timeout == 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPProvider{
		baseURL: baseURL,
		country: country,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the holiday list for the given year
func (p *HTTPProvider) Fetch(ctx context.Context, year int) (Set, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", p.baseURL, year, p.country)

	p.logger.Debug("Fetching public holidays",
		zap.String("url", url),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var entries []publicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	set := make(Set, len(entries))
	for _, e := range entries {
		if e.Date != "" {
			set[e.Date] = struct{}{}
		}
	}

	p.logger.Info("Holidays fetched",
		zap.Int("year", year),
		zap.String("country", p.country),
		zap.Int("count", len(set)))

	return set, nil
}
