package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/lox/weatherterm/internal/fetch"
	"github.com/lox/weatherterm/internal/httputil"
	"github.com/lox/weatherterm/internal/logger"
	"github.com/lox/weatherterm/internal/models"
)

type CLI struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name=env-file,default='.env',help='Path to .env file'"`

	LogLevel    string        `default:"info" enum:"debug,info,warn,error" env:"WEATHERTERM_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat   string        `default:"console" enum:"console,json" env:"WEATHERTERM_LOG_FORMAT" help:"Log encoding (${enum})."`
	URLTemplate string        `name:"url-template" default:"${url_template}" env:"WEATHERTERM_URL_TEMPLATE" help:"Forecast page URL with {forecast} and {area} placeholders."`
	Timeout     time.Duration `default:"30s" env:"WEATHERTERM_TIMEOUT" help:"Page fetch timeout."`
	UserAgent   string        `default:"${user_agent}" env:"WEATHERTERM_USER_AGENT" help:"User agent sent with page requests."`

	Forecast ForecastCmd `cmd:"" default:"withargs" help:"Fetch and print a forecast (default)."`
	History  HistoryCmd  `cmd:"" help:"Show forecasts recorded with --db."`
	Parsers  ParsersCmd  `cmd:"" help:"List available page parsers."`
}

// App holds what commands share once flags are parsed.
type App struct {
	Log     logger.Logger
	Stdout  io.Writer
	Fetcher *fetch.Fetcher
	Now     func() time.Time
}

func vars() kong.Vars {
	return kong.Vars{
		"url_template": fetch.DefaultURLTemplate,
		"user_agent":   httputil.DefaultUserAgent,
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("weatherterm"),
		kong.Description("Weather forecasts scraped from weather.com, in your terminal."),
		kong.UsageOnError(),
		vars(),
	)

	log, err := logger.New(logger.Config{Level: cli.LogLevel, Format: cli.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "weatherterm: %v\n", err)
		return models.ExitConfig
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := &App{
		Log:    log,
		Stdout: os.Stdout,
		Fetcher: fetch.New(
			fetch.WithURLTemplate(cli.URLTemplate),
			fetch.WithTimeout(cli.Timeout),
			fetch.WithUserAgent(cli.UserAgent),
			fetch.WithLogger(log),
		),
		Now: time.Now,
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(app); err != nil {
		log.Debug("command failed", logger.String("command", kctx.Command()), logger.Error(err))
		fmt.Fprintf(os.Stderr, "weatherterm: %v\n", err)
		return models.ExitCode(err)
	}
	return models.ExitOK
}
