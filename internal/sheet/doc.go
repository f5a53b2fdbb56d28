// Package sheet decodes published spreadsheet payloads into a plain table of strings.
//
// Three shapes are understood: the CSV export, the visualization query (gviz) JSON
// response with its JavaScript wrapper, and the published HTML view. Column headers
// are whatever the sheet author typed, so fields are located with Columns, which
// matches headers by case-insensitive substring in a caller-supplied priority order.
package sheet
