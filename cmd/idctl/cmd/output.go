package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apiclient "github.com/infinitidrive/infiniti-drive/internal/api/client"
	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// Prices are shown with Indian digit grouping, e.g. ₹12,09,900.
var rupees = message.NewPrinter(language.MustParse("en-IN"))

func formatPrice(p int) string {
	return rupees.Sprintf("₹%d", p)
}

func formatKm(km int) string {
	return rupees.Sprintf("%d km", km)
}

func soldLabel(sold bool) string {
	if sold {
		return "sold"
	}
	return "available"
}

func printListingsTable(w io.Writer, listings []domain.Listing) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tBRAND\tPRICE\tYEAR\tKM\tSTATUS\n")
	for i := range listings {
		l := &listings[i]
		tw.writef("%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			l.ID,
			truncate(l.Name, 40),
			l.Brand,
			formatPrice(l.Price),
			l.Year,
			formatKm(l.KmDriven),
			soldLabel(l.Sold),
		)
	}
	return tw.finish()
}

func printListingDetail(w io.Writer, l *domain.Listing) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", l.ID)
	tw.writef("Name:\t%s\n", l.Name)
	tw.writef("Brand:\t%s\n", l.Brand)
	tw.writef("Price:\t%s\n", formatPrice(l.Price))
	tw.writef("Year:\t%d\n", l.Year)
	tw.writef("Driven:\t%s\n", formatKm(l.KmDriven))
	tw.writef("Owner:\t%s\n", l.Owner)
	tw.writef("Status:\t%s\n", soldLabel(l.Sold))
	tw.writef("Engine:\t%s\n", l.Engine)
	tw.writef("Power:\t%s\n", l.Horsepower)
	tw.writef("Torque:\t%s\n", l.Torque)
	tw.writef("Fuel:\t%s\n", l.FuelType)
	tw.writef("Transmission:\t%s\n", l.Transmission)
	tw.writef("Top Speed:\t%d km/h\n", l.TopSpeed)
	tw.writef("Mileage:\t%d km/l\n", l.Mileage)
	if l.ImageURL != "" {
		tw.writef("Image:\t%s\n", l.ImageURL)
	}
	if l.Description != "" {
		tw.writef("Description:\t%s\n", truncate(l.Description, 80))
	}
	return tw.finish()
}

// printSections renders each section of a catalogue response, using the
// section state to pick between a table and a status line.
func printSections(w io.Writer, resp *apiclient.ListingsResponse) error {
	if resp.Error != "" {
		return fmt.Errorf("listings could not be loaded: %s", resp.Error)
	}
	if resp.Stale {
		if _, err := fmt.Fprintln(w, "Warning: showing listings from an earlier load; the latest refresh failed."); err != nil {
			return err
		}
	}

	for i := range resp.Sections {
		s := &resp.Sections[i]
		if len(resp.Sections) > 1 {
			if _, err := fmt.Fprintf(w, "\n%s (%d)\n", strings.ToUpper(s.Name), len(s.Listings)); err != nil {
				return err
			}
		}

		var err error
		switch s.State {
		case domain.ViewLoading:
			_, err = fmt.Fprintln(w, "Listings are still loading, try again shortly.")
		case domain.ViewEmpty:
			_, err = fmt.Fprintln(w, "No bikes match these filters.")
		default:
			err = printListingsTable(w, s.Listings)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
