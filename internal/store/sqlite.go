// Package store keeps a history of extracted forecasts in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/models"
)

type Store struct {
	db  *sql.DB
	log logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// Open opens (creating if needed) the SQLite database at path and applies
// migrations.
func Open(path string, log logger.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	s := New(db, log)
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Entry is one recorded forecast.
type Entry struct {
	ID        int64
	RunID     string
	FetchedAt time.Time
	Area      string
	Forecast  models.Forecast
}

// InsertForecast records fc as fetched for area during run runID.
func (s *Store) InsertForecast(runID, area string, fetchedAt time.Time, fc models.Forecast) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO forecasts (run_id, fetched_at, area_code, forecast_type, forecast_date, unit, current_temp, high_temp, low_temp, humidity, wind, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, fetchedAt.UTC(), area, string(fc.Type), fc.Date.Format("2006-01-02"), string(fc.Unit),
		fc.Current, fc.High, fc.Low, fc.Humidity, fc.Wind, fc.Description)
	if err != nil {
		return 0, fmt.Errorf("insert forecast: %w", err)
	}
	return result.LastInsertId()
}

// RecentForecasts returns up to limit entries, newest first. An empty area
// matches every area.
func (s *Store) RecentForecasts(area string, limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, fetched_at, area_code, forecast_type, forecast_date, unit, current_temp, high_temp, low_temp, humidity, wind, description
		FROM forecasts
		WHERE ? = '' OR area_code = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT ?
	`, area, area, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			fcType   string
			fcDate   string
			unit     string
			humidity sql.NullString
			wind     sql.NullString
			desc     sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.FetchedAt, &e.Area, &fcType, &fcDate, &unit,
			&e.Forecast.Current, &e.Forecast.High, &e.Forecast.Low, &humidity, &wind, &desc); err != nil {
			return nil, err
		}
		e.Forecast.Type = models.ForecastType(fcType)
		e.Forecast.Unit = models.Unit(unit)
		e.Forecast.Humidity = humidity.String
		e.Forecast.Wind = wind.String
		e.Forecast.Description = desc.String
		if t, err := time.Parse("2006-01-02", fcDate); err == nil {
			e.Forecast.Date = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
