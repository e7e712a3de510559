package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sentinel is rendered in place of a numeric value that could not be determined.
const Sentinel = "--"

// ForecastType selects which forecast page and recipe a request uses.
type ForecastType string

const (
	Today    ForecastType = "today"
	FiveDays ForecastType = "5day"
	TenDays  ForecastType = "10day"
	Weekend  ForecastType = "weekend"
)

// ForecastTypes lists every supported forecast type in CLI order.
var ForecastTypes = []ForecastType{Today, FiveDays, TenDays, Weekend}

// Token is the path segment used for this forecast type in page URLs.
func (f ForecastType) Token() string {
	return string(f)
}

func ParseForecastType(s string) (ForecastType, error) {
	for _, ft := range ForecastTypes {
		if strings.EqualFold(s, string(ft)) {
			return ft, nil
		}
	}
	return "", &ConfigError{Setting: "forecast", Value: s, Msg: "unknown forecast type"}
}

// Unit is a temperature scale.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	}
	return "", &ConfigError{Setting: "unit", Value: s, Msg: "unknown temperature unit"}
}

// Symbol returns the degree symbol and letter for the unit.
func (u Unit) Symbol() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	default:
		return "°"
	}
}

// Request is a single forecast lookup.
type Request struct {
	Type ForecastType
	Area string
	Unit Unit
}

// Temperature is a numeric temperature or the unknown sentinel.
type Temperature struct {
	Degrees float64
	Known   bool
}

func KnownTemperature(v float64) Temperature {
	return Temperature{Degrees: v, Known: true}
}

func UnknownTemperature() Temperature {
	return Temperature{}
}

// String renders whole values without a decimal point and anything else
// with one decimal place.
func (t Temperature) String() string {
	if !t.Known {
		return Sentinel
	}
	if t.Degrees == math.Trunc(t.Degrees) {
		return strconv.FormatFloat(t.Degrees, 'f', 0, 64)
	}
	return strconv.FormatFloat(t.Degrees, 'f', 1, 64)
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	if !t.Known {
		return []byte("null"), nil
	}
	return json.Marshal(math.Round(t.Degrees*10) / 10)
}

func (t *Temperature) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Temperature{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("temperature: %w", err)
	}
	*t = KnownTemperature(v)
	return nil
}

// Value stores unknown temperatures as NULL.
func (t Temperature) Value() (driver.Value, error) {
	if !t.Known {
		return nil, nil
	}
	return t.Degrees, nil
}

func (t *Temperature) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Temperature{}
	case float64:
		*t = KnownTemperature(v)
	case int64:
		*t = KnownTemperature(float64(v))
	default:
		return fmt.Errorf("scan temperature: unsupported type %T", src)
	}
	return nil
}

// Forecast is the normalized result of one extraction. All temperatures are
// expressed in Unit.
type Forecast struct {
	Date        time.Time    `json:"date"`
	Type        ForecastType `json:"forecast_type"`
	Unit        Unit         `json:"unit"`
	Current     Temperature  `json:"current_temp"`
	High        Temperature  `json:"high_temp"`
	Low         Temperature  `json:"low_temp"`
	Humidity    string       `json:"humidity"`
	Wind        string       `json:"wind"`
	Description string       `json:"description"`
}
