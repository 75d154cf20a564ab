// Package present turns a planned trip into user-facing tables and the
// plain-text export. Row order is fixed and part of the contract: consumers
// of the export file rely on stable rows.
package present

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/heartiecodes/Social-Coding-DevOps/internal/routing"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/service"
	"github.com/heartiecodes/Social-Coding-DevOps/internal/units"
)

// Row is one two-column table row.
type Row [2]string

// SummaryHeader and StepsHeader are the column headers for the two tables.
var (
	SummaryHeader = Row{"Property", "Value"}
	StepsHeader   = Row{"Instruction", "Distance"}
)

// Summary builds the route summary rows in their fixed order:
// start, destination, mode, distance, duration, then the two weather rows
// when the trip carries weather.
func Summary(trip *service.Trip, unit units.UnitPreference) []Row {
	rows := []Row{
		{"Start Location", trip.OriginLabel},
		{"Destination", trip.DestinationLabel},
		{"Travel Mode", capitalize(string(trip.Mode))},
		{"Total Distance", units.FormatDistance(trip.Route.DistanceMeters, unit)},
		{"Estimated Time", units.FormatDuration(trip.Route.TimeMillis)},
	}
	if trip.HasWeather() {
		rows = append(rows,
			Row{"Start Weather", string(trip.OriginWeather)},
			Row{"End Weather", string(trip.DestinationWeather)},
		)
	}
	return rows
}

// Steps builds one row per turn instruction, in route-following order. Every
// distance uses the same unit preference as the summary.
func Steps(instructions []routing.Instruction, unit units.UnitPreference) []Row {
	rows := make([]Row, len(instructions))
	for i, in := range instructions {
		rows[i] = Row{in.Text, units.FormatDistance(in.DistanceMeters, unit)}
	}
	return rows
}

// RenderTable renders a bordered two-column text table.
func RenderTable(header Row, rows []Row) string {
	w0, w1 := utf8.RuneCountInString(header[0]), utf8.RuneCountInString(header[1])
	for _, r := range rows {
		if n := utf8.RuneCountInString(r[0]); n > w0 {
			w0 = n
		}
		if n := utf8.RuneCountInString(r[1]); n > w1 {
			w1 = n
		}
	}

	sep := "+" + strings.Repeat("-", w0+2) + "+" + strings.Repeat("-", w1+2) + "+\n"

	var b strings.Builder
	b.WriteString(sep)
	writeRow(&b, header, w0, w1)
	b.WriteString(sep)
	for _, r := range rows {
		writeRow(&b, r, w0, w1)
	}
	b.WriteString(sep)
	return b.String()
}

func writeRow(b *strings.Builder, r Row, w0, w1 int) {
	fmt.Fprintf(b, "| %s%s | %s%s |\n",
		r[0], strings.Repeat(" ", w0-utf8.RuneCountInString(r[0])),
		r[1], strings.Repeat(" ", w1-utf8.RuneCountInString(r[1])))
}

// SaveSummary writes the rendered summary table to path, overwriting any
// previous file. No append, no versioning.
func SaveSummary(path string, rows []Row) error {
	table := RenderTable(SummaryHeader, rows)
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		return fmt.Errorf("present: save summary: %w", err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
