package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/metrics"
	"github.com/lox/weatherterm/internal/models"
	"github.com/lox/weatherterm/internal/parser"
	"github.com/lox/weatherterm/internal/render"
	"github.com/lox/weatherterm/internal/store"
	"github.com/lox/weatherterm/internal/units"
)

type ForecastCmd struct {
	Area        string `short:"a" required:"" env:"WEATHERTERM_AREA" help:"Area code to look up, e.g. USNY0996:1:US."`
	Forecast    string `short:"f" default:"today" enum:"today,5day,10day,weekend" help:"Forecast to show (${enum})."`
	Unit        string `short:"u" default:"celsius" enum:"celsius,fahrenheit" env:"WEATHERTERM_UNIT" help:"Temperature unit (${enum})."`
	Parser      string `short:"p" default:"weather_com" help:"Page parser to use."`
	Format      string `default:"text" enum:"text,table,json" help:"Output format (${enum})."`
	DB          string `name:"db" type:"path" env:"WEATHERTERM_DB" help:"Record forecasts in this SQLite database."`
	MetricsFile string `type:"path" env:"WEATHERTERM_METRICS_FILE" help:"Write Prometheus metrics to this file after the run."`
}

func (c *ForecastCmd) request() (models.Request, error) {
	ft, err := models.ParseForecastType(c.Forecast)
	if err != nil {
		return models.Request{}, err
	}
	unit, err := models.ParseUnit(c.Unit)
	if err != nil {
		return models.Request{}, err
	}
	return models.Request{Type: ft, Area: c.Area, Unit: unit}, nil
}

func (c *ForecastCmd) Run(ctx context.Context, app *App) error {
	req, err := c.request()
	if err != nil {
		return err
	}
	p, err := parser.New(c.Parser, app.Fetcher, app.Log)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := app.Log.With(logger.String("run_id", runID))
	if c.MetricsFile != "" {
		defer func() {
			if err := metrics.WriteTextfile(c.MetricsFile); err != nil {
				log.Warn("write metrics file", logger.String("path", c.MetricsFile), logger.Error(err))
			}
		}()
	}

	log.Info("fetching forecast",
		logger.String("forecast", string(req.Type)),
		logger.String("area", req.Area),
		logger.String("unit", string(req.Unit)),
	)
	forecasts, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	if c.DB != "" {
		if err := c.record(runID, req, forecasts, app, log); err != nil {
			return err
		}
	}

	return render.Forecasts(app.Stdout, render.Format(c.Format), forecasts)
}

func (c *ForecastCmd) record(runID string, req models.Request, forecasts []models.Forecast, app *App, log logger.Logger) error {
	st, err := store.Open(c.DB, log)
	if err != nil {
		return err
	}
	defer st.Close()

	fetchedAt := app.Now()
	for _, fc := range forecasts {
		if _, err := st.InsertForecast(runID, req.Area, fetchedAt, fc); err != nil {
			return err
		}
	}
	log.Debug("recorded forecasts", logger.String("db", c.DB), logger.Int("count", len(forecasts)))
	return nil
}

type HistoryCmd struct {
	DB     string `name:"db" type:"path" required:"" env:"WEATHERTERM_DB" help:"SQLite database written by forecast --db."`
	Area   string `short:"a" help:"Only show this area code."`
	Limit  int    `short:"n" default:"20" help:"Maximum entries to show."`
	Unit   string `short:"u" default:"stored" enum:"stored,celsius,fahrenheit" help:"Re-express temperatures in this unit (${enum})."`
	Format string `default:"table" enum:"table,json" help:"Output format (${enum})."`
}

func (c *HistoryCmd) Run(app *App) error {
	st, err := store.Open(c.DB, app.Log)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.RecentForecasts(c.Area, c.Limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if c.Unit != "stored" {
		unit, err := models.ParseUnit(c.Unit)
		if err != nil {
			return err
		}
		for i := range entries {
			if err := reexpress(&entries[i].Forecast, unit); err != nil {
				return err
			}
		}
	}

	return render.History(app.Stdout, render.Format(c.Format), entries)
}

func reexpress(fc *models.Forecast, unit models.Unit) error {
	for _, t := range []*models.Temperature{&fc.Current, &fc.High, &fc.Low} {
		converted, err := units.ConvertValue(*t, fc.Unit, unit)
		if err != nil {
			return err
		}
		*t = converted
	}
	fc.Unit = unit
	return nil
}

type ParsersCmd struct{}

func (ParsersCmd) Run(app *App) error {
	for _, name := range parser.Names() {
		fmt.Fprintln(app.Stdout, name)
	}
	return nil
}
