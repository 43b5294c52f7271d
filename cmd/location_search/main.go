package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fakhrymubarak/weather-eink/internal/config"
	"github.com/fakhrymubarak/weather-eink/internal/repository"
	"github.com/spf13/pflag"
)

// Looks up provider locations by name and prints one per line: name, id, coordinates.
func main() {
	query := pflag.StringP("query", "q", "", "location name to search for")
	pflag.Parse()
	if *query == "" && pflag.NArg() > 0 {
		*query = pflag.Arg(0)
	}
	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: location_search --query NAME")
		os.Exit(2)
	}

	repo := repository.NewForecastRepository(config.GetBaseURL())
	results, err := repo.SearchLocation(context.Background(), *query)
	if err != nil {
		config.GetLogger().Errorw("Error searching location", "query", *query, "error", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No locations found for %q\n", *query)
		os.Exit(1)
	}

	for _, d := range results {
		coords := "-"
		if d.Coordinates != nil {
			coords = d.Coordinates.String()
		}
		fmt.Printf("%s\t%s\t%s\n", d.Name, d.ID, coords)
	}
}
