package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pfrederiksen/ceb-outages/internal/logger"
	"github.com/pfrederiksen/ceb-outages/internal/observability"
	"github.com/pfrederiksen/ceb-outages/internal/outage"
)

const (
	OutagePageURL = "https://ceb.mu/customer-corner/power-outage-information"
	UserAgent     = "ceb-outages-cli/1.0 (github.com/pfrederiksen/ceb-outages)"
	Timeout       = 30 * time.Second

	// maxBodySize bounds the page download.
	maxBodySize = 16 << 20
)

// ErrMarkerNotFound is returned when the page has no arDistrictLocations variable.
var ErrMarkerNotFound = errors.New("outage data marker not found in page")

var dataPattern = regexp.MustCompile(`var arDistrictLocations = (.*);`)

// Scraper handles fetching the outage page
type Scraper struct {
	client  *http.Client
	url     string
	metrics *observability.Metrics
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL overrides the page address.
func WithURL(url string) Option {
	return func(s *Scraper) { s.url = url }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithMetrics records download duration and failures on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: OutagePageURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page address the scraper reads.
func (s *Scraper) URL() string {
	return s.url
}

// Fetch downloads the outage page and returns the embedded JSON object text.
func (s *Scraper) Fetch(ctx context.Context) (string, error) {
	start := time.Now()
	data, err := s.fetch(ctx)
	s.metrics.ObserveFetch(time.Since(start), err)
	if err != nil {
		return "", err
	}
	logger.Debug("fetched outage data", logger.Fields{
		"url":      s.url,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	})
	return data, nil
}

func (s *Scraper) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	return extractData(body)
}

// extractData returns the JSON assigned to arDistrictLocations.
func extractData(page []byte) (string, error) {
	m := dataPattern.FindSubmatch(page)
	if m == nil {
		return "", ErrMarkerNotFound
	}
	return string(m[1]), nil
}

// FetchCatalog downloads the page and builds the outage catalog from it.
func (s *Scraper) FetchCatalog(ctx context.Context, opts ...outage.Option) (*outage.Catalog, error) {
	data, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return outage.Build(data, opts...)
}
