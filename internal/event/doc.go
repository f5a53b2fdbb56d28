// Package event defines the canonical event record produced from a spreadsheet feed
// and the normalizers that turn raw cell text into its typed fields.
//
// Normalizers never fail: a date that cannot be parsed is passed through verbatim,
// structured list cells fall back from JSON to text splitting, and image links that
// are not recognizable Drive links are kept only when they are absolute URLs.
package event
