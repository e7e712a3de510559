// Package units converts temperatures between scales.
package units

import (
	"strconv"
	"strings"

	"github.com/lox/weatherterm/internal/models"
)

// Converter converts temperatures scraped in a fixed source unit.
type Converter struct {
	Source models.Unit
}

func NewConverter(source models.Unit) Converter {
	return Converter{Source: source}
}

// Convert parses raw and expresses it in dest. The sentinel, and any text
// that is not a number, yields an unknown temperature. An unsupported unit
// pair is an error even when raw is the sentinel.
func (c Converter) Convert(raw string, dest models.Unit) (models.Temperature, error) {
	fn, err := conversion(c.Source, dest)
	if err != nil {
		return models.UnknownTemperature(), err
	}
	raw = strings.TrimSpace(raw)
	if raw == models.Sentinel {
		return models.UnknownTemperature(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.UnknownTemperature(), nil
	}
	return models.KnownTemperature(fn(v)), nil
}

// ConvertValue re-expresses t, measured in from, in to.
func ConvertValue(t models.Temperature, from, to models.Unit) (models.Temperature, error) {
	fn, err := conversion(from, to)
	if err != nil {
		return models.UnknownTemperature(), err
	}
	if !t.Known {
		return t, nil
	}
	return models.KnownTemperature(fn(t.Degrees)), nil
}

func conversion(from, to models.Unit) (func(float64) float64, error) {
	switch {
	case !supported(from):
		return nil, &models.ConfigError{Setting: "source unit", Value: string(from), Msg: "no conversion rule"}
	case !supported(to):
		return nil, &models.ConfigError{Setting: "destination unit", Value: string(to), Msg: "no conversion rule"}
	case from == to:
		return func(v float64) float64 { return v }, nil
	case from == models.Fahrenheit:
		return toCelsius, nil
	default:
		return toFahrenheit, nil
	}
}

func supported(u models.Unit) bool {
	return u == models.Celsius || u == models.Fahrenheit
}

func toCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func toFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
