// Package parser turns forecast requests into forecasts by fetching a page
// and running the recipe registered for the request's forecast type.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/metrics"
	"github.com/lox/weatherterm/internal/models"
	"github.com/lox/weatherterm/internal/units"
)

// Fetcher returns the markup of a forecast page.
type Fetcher interface {
	Fetch(ctx context.Context, forecast, area string) (string, error)
}

// WeatherCom parses weather.com forecast pages, which report Fahrenheit.
type WeatherCom struct {
	fetcher   Fetcher
	converter units.Converter
	recipes   map[models.ForecastType]Recipe
	log       logger.Logger
	now       func() time.Time
}

type Option func(*WeatherCom)

// WithClock sets the clock used to date forecasts.
func WithClock(now func() time.Time) Option {
	return func(w *WeatherCom) { w.now = now }
}

func NewWeatherCom(fetcher Fetcher, log logger.Logger, opts ...Option) *WeatherCom {
	multiDay := stubRecipe{name: "five and ten days"}
	w := &WeatherCom{
		fetcher:   fetcher,
		converter: units.NewConverter(models.Fahrenheit),
		recipes: map[models.ForecastType]Recipe{
			models.Today:    todayRecipe{},
			models.FiveDays: multiDay,
			models.TenDays:  multiDay,
			models.Weekend:  stubRecipe{name: "weekend"},
		},
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run fetches the page for req and extracts its forecasts. Errors from the
// fetcher are returned unchanged.
func (w *WeatherCom) Run(ctx context.Context, req models.Request) ([]models.Forecast, error) {
	recipe, ok := w.recipes[req.Type]
	if !ok {
		return nil, &models.ConfigError{Setting: "forecast", Value: string(req.Type), Msg: "no recipe for forecast type"}
	}
	if !implemented(recipe) {
		return nil, fmt.Errorf("%s: %w", req.Type, models.ErrNotImplemented)
	}

	log := w.log.With(
		logger.String("recipe", recipe.Name()),
		logger.String("area", req.Area),
	)

	content, err := w.fetcher.Fetch(ctx, req.Type.Token(), req.Area)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, w.parseFailed(recipe, &models.ParseError{Recipe: recipe.Name(), Msg: "parse html", Err: err})
	}

	container, err := recipe.Container(doc)
	if err != nil {
		return nil, w.parseFailed(recipe, err)
	}

	forecasts, err := recipe.Forecasts(container, Assembly{
		Request:   req,
		Converter: w.converter,
		Date:      w.now(),
	})
	if err != nil {
		return nil, w.parseFailed(recipe, err)
	}

	metrics.ForecastsProduced.WithLabelValues(string(req.Type)).Add(float64(len(forecasts)))
	log.Debug("extracted forecasts", logger.Int("count", len(forecasts)))
	return forecasts, nil
}

func (w *WeatherCom) parseFailed(r Recipe, err error) error {
	var pe *models.ParseError
	if errors.As(err, &pe) {
		metrics.ParseFailures.WithLabelValues(r.Name()).Inc()
	}
	return err
}
