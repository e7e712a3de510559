package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/weatherterm/internal/fetch"
	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/models"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, handler http.HandlerFunc) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	return &App{
		Log:     logger.NewNop(),
		Stdout:  &out,
		Fetcher: fetch.New(fetch.WithURLTemplate(srv.URL + "/weather/{forecast}/l/{area}")),
		Now:     func() time.Time { return fixedNow },
	}, &out
}

func servePage(t *testing.T) http.HandlerFunc {
	page, err := os.ReadFile("testdata/today.html")
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/USNY0996:1:US") {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><head><title>404 Not Found</title></head></html>`))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func forecastCmd() *ForecastCmd {
	return &ForecastCmd{
		Area:     "USNY0996:1:US",
		Forecast: "today",
		Unit:     "celsius",
		Parser:   "weather_com",
		Format:   "json",
	}
}

func TestForecastCmd_JSON(t *testing.T) {
	app, out := newTestApp(t, servePage(t))

	require.NoError(t, forecastCmd().Run(context.Background(), app))

	var got []models.Forecast
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "20", got[0].Current.String())
	assert.Equal(t, "22.2", got[0].High.String())
	assert.Equal(t, "12.8", got[0].Low.String())
	assert.Equal(t, "Cloudy", got[0].Description)
	assert.Equal(t, models.Celsius, got[0].Unit)
}

func TestForecastCmd_Text(t *testing.T) {
	app, out := newTestApp(t, servePage(t))
	cmd := forecastCmd()
	cmd.Format = "text"
	cmd.Unit = "fahrenheit"

	require.NoError(t, cmd.Run(context.Background(), app))
	assert.Contains(t, out.String(), "    68°\n    High 72° / Low 55° (Cloudy)\n    Wind: 10 mph / Humidity: 45%\n")
}

func TestForecastCmd_AreaNotFound(t *testing.T) {
	app, _ := newTestApp(t, servePage(t))
	cmd := forecastCmd()
	cmd.Area = "nowhere"

	err := cmd.Run(context.Background(), app)
	assert.ErrorIs(t, err, models.ErrAreaNotFound)
	assert.Equal(t, models.ExitFetch, models.ExitCode(err))
}

func TestForecastCmd_NotImplemented(t *testing.T) {
	app, _ := newTestApp(t, servePage(t))
	cmd := forecastCmd()
	cmd.Forecast = "5day"

	err := cmd.Run(context.Background(), app)
	assert.ErrorIs(t, err, models.ErrNotImplemented)
	assert.Equal(t, models.ExitConfig, models.ExitCode(err))
}

func TestForecastCmd_UnknownParser(t *testing.T) {
	app, _ := newTestApp(t, servePage(t))
	cmd := forecastCmd()
	cmd.Parser = "accuweather"

	assert.Equal(t, models.ExitConfig, models.ExitCode(cmd.Run(context.Background(), app)))
}

func TestForecastCmd_RecordsHistoryAndMetrics(t *testing.T) {
	app, _ := newTestApp(t, servePage(t))
	dir := t.TempDir()
	cmd := forecastCmd()
	cmd.DB = filepath.Join(dir, "history.db")
	cmd.MetricsFile = filepath.Join(dir, "weatherterm.prom")

	require.NoError(t, cmd.Run(context.Background(), app))
	require.NoError(t, cmd.Run(context.Background(), app))

	prom, err := os.ReadFile(cmd.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "weatherterm_page_fetches_total")

	var out bytes.Buffer
	app.Stdout = &out
	hist := &HistoryCmd{DB: cmd.DB, Area: "USNY0996:1:US", Limit: 10, Unit: "fahrenheit", Format: "json"}
	require.NoError(t, hist.Run(app))

	var rows []struct {
		RunID    string          `json:"run_id"`
		Area     string          `json:"area"`
		Forecast models.Forecast `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].RunID, rows[1].RunID)
	assert.Equal(t, models.Fahrenheit, rows[0].Forecast.Unit)
	assert.InDelta(t, 68, rows[0].Forecast.Current.Degrees, 0.05)
}

func TestParsersCmd(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ParsersCmd{}.Run(&App{Stdout: &out}))
	assert.Equal(t, "weather_com\n", out.String())
}

func TestCLI_DefaultCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	var cli CLI
	k, err := kong.New(&cli, vars())
	require.NoError(t, err)

	kctx, err := k.Parse([]string{"-a", "USNY0996:1:US", "-u", "fahrenheit"})
	require.NoError(t, err)
	assert.Equal(t, "forecast", kctx.Command())
	assert.Equal(t, "USNY0996:1:US", cli.Forecast.Area)
	assert.Equal(t, "today", cli.Forecast.Forecast)
	assert.Equal(t, "fahrenheit", cli.Forecast.Unit)
	assert.Equal(t, fetch.DefaultURLTemplate, cli.URLTemplate)
	assert.Equal(t, 30*time.Second, cli.Timeout)
}

func TestCLI_RejectsUnknownForecast(t *testing.T) {
	t.Chdir(t.TempDir())

	var cli CLI
	k, err := kong.New(&cli, vars())
	require.NoError(t, err)

	_, err = k.Parse([]string{"forecast", "-a", "X", "-f", "monthly"})
	assert.Error(t, err)
}
