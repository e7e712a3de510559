// Package fetch retrieves forecast page markup.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/lox/weatherterm/internal/httputil"
	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/metrics"
	"github.com/lox/weatherterm/internal/models"
)

const (
	// DefaultURLTemplate is the weather.com forecast page for an area.
	DefaultURLTemplate = "http://weather.com/weather/{forecast}/l/{area}"

	// NotFoundTitle is the page title served for unknown areas.
	NotFoundTitle = "404 Not Found"
)

// Fetcher downloads forecast pages, one request per call.
type Fetcher struct {
	urlTemplate string
	userAgent   string
	client      *http.Client
	log         logger.Logger
}

type Option func(*Fetcher)

// WithURLTemplate sets the page URL template. It must contain the
// {forecast} and {area} placeholders.
func WithURLTemplate(tmpl string) Option {
	return func(f *Fetcher) { f.urlTemplate = tmpl }
}

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client = httputil.NewClient(d) }
}

func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		urlTemplate: DefaultURLTemplate,
		userAgent:   httputil.DefaultUserAgent,
		client:      httputil.NewClient(httputil.DefaultTimeout),
		log:         logger.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL expands the template for a forecast type token and area code.
func (f *Fetcher) URL(forecast, area string) string {
	return strings.NewReplacer(
		"{forecast}", url.PathEscape(forecast),
		"{area}", url.PathEscape(area),
	).Replace(f.urlTemplate)
}

// Fetch returns the markup of the forecast page. An unknown area yields a
// FetchError wrapping models.ErrAreaNotFound.
func (f *Fetcher) Fetch(ctx context.Context, forecast, area string) (string, error) {
	pageURL := f.URL(forecast, area)
	log := f.log.With(logger.String("url", pageURL))

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(f.userAgent),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetClient(f.client)

	var (
		status int
		title  string
		body   []byte
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})

	log.Debug("fetching forecast page")
	start := time.Now()
	err := c.Visit(pageURL)
	metrics.FetchDuration.WithLabelValues(forecast).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		metrics.FetchesTotal.WithLabelValues(forecast, metrics.StatusError).Inc()
		return "", &models.FetchError{URL: pageURL, Err: err}
	case status == http.StatusNotFound || title == NotFoundTitle:
		metrics.FetchesTotal.WithLabelValues(forecast, metrics.StatusNotFound).Inc()
		return "", &models.FetchError{URL: pageURL, Err: models.ErrAreaNotFound}
	case status < 200 || status > 299:
		metrics.FetchesTotal.WithLabelValues(forecast, metrics.StatusError).Inc()
		return "", &models.FetchError{URL: pageURL, Err: fmt.Errorf("unexpected status: %d", status)}
	}

	metrics.FetchesTotal.WithLabelValues(forecast, metrics.StatusOK).Inc()
	log.Debug("fetched forecast page",
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return string(body), nil
}
