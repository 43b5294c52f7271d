package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/model"
	"github.com/fakhrymubarak/weather-eink/internal/presenter"
	"github.com/fakhrymubarak/weather-eink/internal/repository"
	"github.com/fakhrymubarak/weather-eink/internal/service"
	"github.com/spf13/pflag"
)

// Prints a multi-hour forecast table for one location, optionally saving the raw document.
func main() {
	coordinates := pflag.String("coordinates", config.GetDefaultCoordinates(), `coordinates in "lat;lon" format`)
	locationID := pflag.String("location-id", "", "provider location id")
	lang := pflag.String("lang", config.GetDefaultLanguage(), "forecast language")
	hours := pflag.Int("hours", 48, "number of hourly entries to show")
	dump := pflag.String("dump", "", "write the raw forecast JSON to this file")
	pflag.Parse()

	log := config.GetLogger()

	query := model.ForecastQuery{LocationID: *locationID, Language: *lang}
	if *locationID == "" || pflag.CommandLine.Changed("coordinates") {
		c, err := model.ParseCoordinates(*coordinates)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		query.Coordinates = &c
	}

	svc := service.NewWeatherService(repository.NewForecastRepository(config.GetBaseURL()))
	forecast, err := svc.GetForecast(context.Background(), query)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to fetch forecast data")
		os.Exit(1)
	}

	fmt.Println(presenter.FormatForecastTable(forecast, *hours, time.Now()))

	if *dump != "" {
		if err := repository.DumpForecast(*dump, forecast); err != nil {
			log.Fatalw("Error saving forecast dump", "path", *dump, "error", err)
		}
		fmt.Printf("\nFull forecast data saved to: %s\n", *dump)
	}
}
