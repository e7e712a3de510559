package parser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/lox/weatherterm/internal/models"
	"github.com/lox/weatherterm/internal/scrape"
)

const (
	todayContainerClass = "today_nowcard-container"
	todaySidecarClass   = "today_nowcard-sidecar"

	todayTemp   = "today_nowcard-temp"
	todayPhrase = "today_nowcard-phrase"
	todayHiLo   = "today_nowcard-hilo"
)

var todayCriteria = scrape.Criteria{
	{Field: todayTemp, Tag: "div"},
	{Field: todayPhrase, Tag: "div"},
	{Field: todayHiLo, Tag: "div"},
}

// todayRecipe reads the "right now" card.
type todayRecipe struct{}

func (todayRecipe) Name() string { return "today" }

func (r todayRecipe) Container(doc *goquery.Document) (*goquery.Selection, error) {
	container := scrape.FindClass(doc.Selection, "section", todayContainerClass)
	if container.Length() == 0 {
		return nil, &models.ParseError{Recipe: r.Name(), Msg: "could not find " + todayContainerClass}
	}
	return container, nil
}

// Forecasts builds a single forecast from the first matching row. The card
// is expected to hold exactly one; any further rows are ignored.
func (r todayRecipe) Forecasts(container *goquery.Selection, a Assembly) ([]models.Forecast, error) {
	info, ok := scrape.First(scrape.Parse(container, todayCriteria))
	if !ok {
		return nil, &models.ParseError{Recipe: r.Name(), Msg: "could not parse weather forecast for today"}
	}
	for _, field := range todayCriteria.Fields() {
		if _, ok := info[field]; !ok {
			return nil, &models.ParseError{Recipe: r.Name(), Field: field, Msg: "missing"}
		}
	}

	high, low, err := scrape.ParseHighLow(info[todayHiLo])
	if err != nil {
		return nil, r.wrap(err, todayHiLo)
	}

	sidecar := scrape.FindClass(container, "div", todaySidecarClass)
	if sidecar.Length() == 0 {
		return nil, &models.ParseError{Recipe: r.Name(), Msg: "could not find " + todaySidecarClass}
	}
	wind, humidity, err := scrape.FirstTwoOf(sidecar)
	if err != nil {
		return nil, r.wrap(err, todaySidecarClass)
	}

	fc := models.Forecast{
		Date:        a.Date,
		Type:        a.Request.Type,
		Unit:        a.Request.Unit,
		Humidity:    humidity,
		Wind:        wind,
		Description: info[todayPhrase],
	}
	temps := []struct {
		raw string
		dst *models.Temperature
	}{
		{scrape.SanitizeDigits(info[todayTemp]), &fc.Current},
		{high, &fc.High},
		{low, &fc.Low},
	}
	for _, t := range temps {
		if *t.dst, err = a.Converter.Convert(t.raw, a.Request.Unit); err != nil {
			return nil, err
		}
	}

	return []models.Forecast{fc}, nil
}

// wrap stamps the recipe and field onto a normalizer's ParseError.
func (r todayRecipe) wrap(err error, field string) error {
	if pe, ok := err.(*models.ParseError); ok {
		return &models.ParseError{Recipe: r.Name(), Field: field, Msg: pe.Msg, Err: pe.Err}
	}
	return err
}
