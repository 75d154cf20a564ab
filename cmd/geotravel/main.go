// Command geotravel is the interactive route planner: it prompts for a start
// and end location, resolves them, fetches weather and a route, and prints
// the summary tables. Optional outputs: a step-by-step table, a plain-text
// summary file and an interactive HTML map.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/app"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/config"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/mapout"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/present"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/units"
)

// summaryPath is the fixed summary export filename. An existing file is
// overwritten.
const summaryPath = "route_summary.txt"

// Exit codes by failure kind, so scripts can tell bad input from a bad day
// at the API.
const (
	exitOK          = 0
	exitOther       = 1
	exitNotFound    = 2
	exitClientError = 3
	exitNoPath      = 4
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", os.Getenv("GEOTRAVEL_CONFIG"), "path to optional TOML config file")
	fromFlag := flag.String("from", "", "start location (skips the prompt)")
	toFlag := flag.String("to", "", "destination (skips the prompt)")
	modeFlag := flag.String("mode", "", "travel mode: car, bike, foot or motorcycle (skips the prompt)")
	unitFlag := flag.String("unit", "", "unit system: km or mi (skips the prompt)")
	flag.Parse()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return exitOther
	}

	deps, err := app.Build(cfg)
	if err != nil {
		log.Printf("failed to initialize: %v", err)
		return exitOther
	}
	defer deps.Close()

	in := bufio.NewScanner(os.Stdin)

	fmt.Println()
	fmt.Println("=== GeoTravel Route Finder ===")
	fmt.Println()

	from := *fromFlag
	if from == "" {
		from = prompt(in, "Enter start location (e.g., Batangas, Philippines): ")
	}
	to := *toFlag
	if to == "" {
		to = prompt(in, "Enter destination (e.g., Manila, Philippines): ")
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		fmt.Println("Both a start location and a destination are required.")
		return exitOther
	}

	mode := chooseMode(in, *modeFlag)
	unit := chooseUnit(in, *unitFlag)

	fmt.Println()
	fmt.Println("Getting coordinates and route data, please wait...")
	fmt.Println()

	trip, err := deps.Planner.Plan(context.Background(), service.TripRequest{
		Origin:      from,
		Destination: to,
		Mode:        mode,
	})
	if err != nil {
		return reportPlanError(err)
	}

	summaryRows := present.Summary(trip, unit)
	fmt.Println("=== ROUTE SUMMARY ===")
	fmt.Println()
	fmt.Print(present.RenderTable(present.SummaryHeader, summaryRows))

	if len(trip.Route.Instructions) > 0 && askYesNo(in, "\nWould you like to see step-by-step directions? (y/n): ") {
		fmt.Println()
		fmt.Println("=== Step-by-Step Directions ===")
		fmt.Println()
		fmt.Print(present.RenderTable(present.StepsHeader, present.Steps(trip.Route.Instructions, unit)))
	}

	if askYesNo(in, "\nSave route summary to file? (y/n): ") {
		if err := present.SaveSummary(summaryPath, summaryRows); err != nil {
			log.Printf("could not save summary: %v", err)
		} else {
			fmt.Printf("Route summary saved as %q.\n", summaryPath)
		}
	}

	if len(trip.Route.Points) > 0 && askYesNo(in, "\nCreate an interactive map? (y/n): ") {
		if err := mapout.NewRenderer().Write(mapout.DefaultPath, trip); err != nil {
			log.Printf("could not create map: %v", err)
		} else {
			fmt.Printf("Map created. Open %q to view your route.\n", mapout.DefaultPath)
		}
	}

	fmt.Println()
	fmt.Println("Thank you for using GeoTravel!")
	return exitOK
}

// reportPlanError prints a user-facing message and maps the error to its
// exit code.
func reportPlanError(err error) int {
	var pnf *service.PlaceNotFoundError
	var np *routing.NoPathError

	switch {
	case errors.As(err, &pnf):
		fmt.Printf("Could not find location: %s\n", pnf.Err.Query)
		return exitNotFound
	case errors.As(err, &np):
		fmt.Println("The routing service found no path between those locations.")
		return exitNoPath
	default:
		fmt.Printf("Could not retrieve route data: %v\n", err)
		return exitClientError
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

// chooseMode resolves the travel mode from the flag or a numbered prompt.
// Anything unrecognized falls back to car.
func chooseMode(in *bufio.Scanner, flagValue string) routing.TravelMode {
	if flagValue != "" {
		mode := routing.TravelMode(strings.ToLower(flagValue))
		if mode.IsValid() {
			return mode
		}
		fmt.Printf("Unsupported mode %q. Defaulting to car.\n", flagValue)
		return routing.DefaultMode
	}

	fmt.Println("\nChoose your mode of transportation:")
	fmt.Println("1. Car")
	fmt.Println("2. Motorcycle")
	fmt.Println("3. Foot")
	fmt.Println("4. Bike")

	switch prompt(in, "Enter choice (1/2/3/4): ") {
	case "2":
		return routing.ModeMotorcycle
	case "3":
		return routing.ModeFoot
	case "4":
		return routing.ModeBike
	default:
		return routing.ModeCar
	}
}

// chooseUnit resolves the unit preference from the flag or a prompt,
// defaulting to kilometers with a warning on invalid input.
func chooseUnit(in *bufio.Scanner, flagValue string) units.UnitPreference {
	raw := flagValue
	if raw == "" {
		raw = prompt(in, "\nChoose unit system (km/mi): ")
	}
	unit, ok := units.ParseUnit(raw)
	if !ok {
		fmt.Println("Invalid choice. Defaulting to kilometers.")
	}
	return unit
}

func askYesNo(in *bufio.Scanner, label string) bool {
	answer := strings.ToLower(prompt(in, label))
	return answer == "y" || answer == "yes"
}
