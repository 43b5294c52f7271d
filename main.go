package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/fakhrymubarak/weather-eink/internal/presenter"
	"github.com/fakhrymubarak/weather-eink/internal/redis"
	"github.com/fakhrymubarak/weather-eink/internal/repository"
	"github.com/fakhrymubarak/weather-eink/internal/service"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitFetch = 1
	exitUsage = 2
)

type publisher interface {
	Publish(ctx context.Context, text string) error
}

// app wires the CLI to its collaborators so tests can swap them.
type app struct {
	repo      repository.ForecastRepository
	publisher func() publisher
	stdout    io.Writer
	stderr    io.Writer
}

func main() {
	a := &app{
		repo:      repository.NewForecastRepository(config.GetBaseURL()),
		publisher: func() publisher { return redis.NewDisplayPublisher() },
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	os.Exit(a.run(context.Background(), os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	names := make([]string, len(presenter.Formats))
	for i, f := range presenter.Formats {
		names[i] = string(f)
	}

	fs := pflag.NewFlagSet("weather", pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	coordinates := fs.String("coordinates", config.GetDefaultCoordinates(), `coordinates in "lat;lon" format`)
	locationID := fs.String("location-id", "", "provider location id (from location search)")
	lang := fs.String("lang", config.GetDefaultLanguage(), "forecast language: et, en or ru")
	format := fs.String("format", string(presenter.FormatNameSimple), "output format: "+strings.Join(names, ", "))
	dump := fs.String("dump", "", "write the raw forecast JSON to this file")
	publish := fs.Bool("publish", false, "also publish the rendered text to the Redis display key")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	f, err := presenter.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return exitUsage
	}

	query := model.ForecastQuery{LocationID: *locationID, Language: *lang}
	if *locationID == "" || fs.Changed("coordinates") {
		c, err := model.ParseCoordinates(*coordinates)
		if err != nil {
			fmt.Fprintln(a.stderr, err)
			return exitUsage
		}
		query.Coordinates = &c
	}

	repo := a.repo
	if *dump != "" {
		repo = repository.NewDumpingForecastRepository(repo, *dump)
	}
	conditions, err := service.NewWeatherService(repo).GetCurrentConditions(ctx, query)
	if err != nil {
		fmt.Fprintln(a.stderr, "Failed to fetch weather data")
		return exitFetch
	}

	text := presenter.Render(f, conditions)
	fmt.Fprintln(a.stdout, text)

	if *publish {
		if err := a.publisher().Publish(ctx, text); err != nil {
			config.GetLogger().Errorw("Error publishing display text", "error", err)
			return exitFetch
		}
	}
	return exitOK
}
