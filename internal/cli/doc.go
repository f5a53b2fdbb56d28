// Package cli implements the command-line interface for sheet-events.
//
// The cli package provides the Cobra-based CLI: listing events with search, time
// window and sort options, showing one event in detail, exporting iCalendar files
// and serving the HTTP API. It wires the config, feed, session, filter, calendar
// and server packages together.
package cli
