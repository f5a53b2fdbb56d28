// Package feed fetches a published spreadsheet and assembles its rows into events.
//
// Client.Fetch reports transport and decoding failures as errors. Client.Events is
// the soft variant used by sessions: failures are logged and reduce to an empty
// slice, so callers only ever have to decide what to do with "no events".
package feed
