// Package render writes forecasts for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lox/weatherterm/internal/models"
	"github.com/lox/weatherterm/internal/store"
)

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

const dateLayout = "Mon Jan 02"

// Forecasts writes forecasts to w in the given format.
func Forecasts(w io.Writer, format Format, forecasts []models.Forecast) error {
	switch format {
	case FormatText, "":
		for _, fc := range forecasts {
			if _, err := io.WriteString(w, Text(fc)); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		t := newTable(w)
		t.AppendHeader(table.Row{"Date", "Now", "High", "Low", "Conditions", "Wind", "Humidity"})
		for _, fc := range forecasts {
			t.AppendRow(table.Row{
				fc.Date.Format(dateLayout),
				degrees(fc.Current, fc.Unit),
				degrees(fc.High, fc.Unit),
				degrees(fc.Low, fc.Unit),
				fc.Description,
				fc.Wind,
				fc.Humidity,
			})
		}
		t.Render()
		return nil
	case FormatJSON:
		return writeJSON(w, forecasts)
	default:
		return &models.ConfigError{Setting: "format", Value: string(format), Msg: "unknown output format"}
	}
}

// Text renders one forecast in the plain terminal layout.
func Text(fc models.Forecast) string {
	const offset = "    "
	var b strings.Builder
	fmt.Fprintf(&b, ">> %s\n", fc.Date.Format(dateLayout))
	fmt.Fprintf(&b, "%s%s°\n", offset, fc.Current)
	fmt.Fprintf(&b, "%sHigh %s° / Low %s° (%s)\n", offset, fc.High, fc.Low, fc.Description)
	fmt.Fprintf(&b, "%sWind: %s / Humidity: %s\n", offset, fc.Wind, fc.Humidity)
	return b.String()
}

type historyRow struct {
	ID        int64           `json:"id"`
	RunID     string          `json:"run_id"`
	FetchedAt string          `json:"fetched_at"`
	Area      string          `json:"area"`
	Forecast  models.Forecast `json:"forecast"`
}

// History writes recorded forecasts to w as a table or JSON.
func History(w io.Writer, format Format, entries []store.Entry) error {
	switch format {
	case FormatTable, FormatText, "":
		t := newTable(w)
		t.AppendHeader(table.Row{"Fetched", "Area", "Type", "Now", "High", "Low", "Conditions", "Wind", "Humidity"})
		for _, e := range entries {
			fc := e.Forecast
			t.AppendRow(table.Row{
				e.FetchedAt.Local().Format("2006-01-02 15:04"),
				e.Area,
				string(fc.Type),
				degrees(fc.Current, fc.Unit),
				degrees(fc.High, fc.Unit),
				degrees(fc.Low, fc.Unit),
				fc.Description,
				fc.Wind,
				fc.Humidity,
			})
		}
		t.Render()
		return nil
	case FormatJSON:
		rows := make([]historyRow, len(entries))
		for i, e := range entries {
			rows[i] = historyRow{
				ID:        e.ID,
				RunID:     e.RunID,
				FetchedAt: e.FetchedAt.UTC().Format("2006-01-02T15:04:05Z"),
				Area:      e.Area,
				Forecast:  e.Forecast,
			}
		}
		return writeJSON(w, rows)
	default:
		return &models.ConfigError{Setting: "format", Value: string(format), Msg: "unknown output format"}
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func degrees(t models.Temperature, u models.Unit) string {
	if !t.Known {
		return t.String()
	}
	return t.String() + u.Symbol()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
