package parser

import (
	"context"
	"slices"

	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/models"
)

// Parser produces forecasts for a request.
type Parser interface {
	Run(ctx context.Context, req models.Request) ([]models.Forecast, error)
}

// Factory builds a parser around a page fetcher.
type Factory func(fetcher Fetcher, log logger.Logger) Parser

// DefaultName is the parser used when none is selected.
const DefaultName = "weather_com"

var registry = map[string]Factory{
	DefaultName: func(f Fetcher, log logger.Logger) Parser { return NewWeatherCom(f, log) },
}

// Names lists the registered parsers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func New(name string, fetcher Fetcher, log logger.Logger) (Parser, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, &models.ConfigError{Setting: "parser", Value: name, Msg: "no such parser"}
	}
	return factory(fetcher, log), nil
}
