package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/sheet-events/internal/event"
	"github.com/pfrederiksen/sheet-events/internal/logger"
	"github.com/pfrederiksen/sheet-events/internal/metrics"
	"github.com/pfrederiksen/sheet-events/internal/sheet"
)

const (
	DefaultURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTouohnGGXpsh61xSxwiW7md1YOdtTYi9_qRxHf5jqdqQCZX-m2GRGI80f476J4j-Kze-CeLPsEHKNM/pub?output=csv"
	UserAgent  = "sheet-events/1.0 (github.com/pfrederiksen/sheet-events)"
	Timeout    = 30 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 16 << 20
)

// ErrUnexpectedStatus is returned for non-2xx responses
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client fetches the feed and assembles events
type Client struct {
	client    *http.Client
	url       string
	transport Transport
	wrapper   sheet.Wrapper
	userAgent string
	now       func() time.Time
	metrics   *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithURL sets the feed endpoint
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithTransport sets how the payload is decoded
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithWrapper sets the gviz wrapper offsets
func WithWrapper(w sheet.Wrapper) Option {
	return func(c *Client) { c.wrapper = w }
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithClock sets the time source used for status inference
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithMetrics sets where fetch metrics are recorded
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a new Client for the default CSV feed
func New(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:       DefaultURL,
		transport: TransportCSV,
		wrapper:   sheet.DefaultWrapper,
		userAgent: UserAgent,
		now:       time.Now,
		metrics:   metrics.Default,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the feed endpoint
func (c *Client) URL() string {
	return c.url
}

// Transport returns the configured transport
func (c *Client) Transport() Transport {
	return c.transport
}

// Fetch downloads the feed and assembles its rows.
// Transport failures, non-2xx responses and undecodable payloads are returned as errors.
func (c *Client) Fetch(ctx context.Context) ([]*event.Event, error) {
	start := time.Now()
	transport := string(c.transport)

	body, err := c.fetchBody(ctx)
	if err != nil {
		c.metrics.ObserveFetch(transport, metrics.OutcomeTransportError, time.Since(start))
		return nil, err
	}

	table, err := decode(c.transport, body, c.wrapper)
	if err != nil {
		c.metrics.ObserveFetch(transport, metrics.OutcomeDecodeError, time.Since(start))
		return nil, fmt.Errorf("decoding %s payload: %w", c.transport, err)
	}

	events, dropped := Assemble(table, c.now())
	c.metrics.ObserveFetch(transport, metrics.OutcomeOK, time.Since(start))
	c.metrics.AddRows(metrics.RowKept, len(events))
	c.metrics.AddRows(metrics.RowDropped, dropped)

	if dropped > 0 {
		logger.DebugCtx(ctx, "Dropped placeholder rows", logger.Fields{
			"dropped": dropped,
			"rows":    table.Len(),
		})
	}
	return events, nil
}

// Events is Fetch without errors: any failure is logged and yields an empty slice
func (c *Client) Events(ctx context.Context) []*event.Event {
	events, err := c.Fetch(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, "Fetching events failed", logger.Fields{
			"url":       c.url,
			"transport": string(c.transport),
		}, err)
		return []*event.Event{}
	}
	if len(events) == 0 {
		logger.WarnCtx(ctx, "No data rows in feed", logger.Fields{
			"url": c.url,
		})
	}
	return events
}

func (c *Client) fetchBody(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
