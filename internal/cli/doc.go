// Package cli implements the command-line interface for ceb-outages.
//
// The cli package provides the Cobra-based commands that fetch the Central
// Electricity Board outage page (or read a saved copy of its data), build the
// outage catalog and print regions as text, JSON or iCalendar.
package cli
