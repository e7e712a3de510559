package parser

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lox/weatherterm/internal/models"
	"github.com/lox/weatherterm/internal/units"
)

// Recipe turns the markup of one forecast page into forecasts.
type Recipe interface {
	Name() string
	// Container locates the node whose children hold the forecast rows.
	Container(doc *goquery.Document) (*goquery.Selection, error)
	// Forecasts extracts, normalizes and converts the rows under container.
	Forecasts(container *goquery.Selection, a Assembly) ([]models.Forecast, error)
}

// Assembly carries what a recipe needs to build forecasts for one request.
type Assembly struct {
	Request   models.Request
	Converter units.Converter
	Date      time.Time
}

// stubRecipe stands in for forecast types the page layout has no recipe for
// yet. Dispatch rejects it before anything is fetched.
type stubRecipe struct {
	name string
}

func (s stubRecipe) Name() string { return s.name }

func (s stubRecipe) Container(*goquery.Document) (*goquery.Selection, error) {
	return nil, models.ErrNotImplemented
}

func (s stubRecipe) Forecasts(*goquery.Selection, Assembly) ([]models.Forecast, error) {
	return nil, models.ErrNotImplemented
}

func implemented(r Recipe) bool {
	_, stub := r.(stubRecipe)
	return !stub
}
