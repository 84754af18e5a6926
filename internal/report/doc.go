// Package report aggregates recorded violations into compliance
// summaries. A report counts violations by kind, severity and status,
// sums their monetary impact exactly, ranks the most-cited regulation
// codes, and scores overall compliance from a configurable penalty
// table. Report generation is itself an audited event: every generated
// report appends a ledger entry.
//
// Reports are deterministic: the same ledger state, window and scoring
// config always produce byte-identical canonical JSON.
package report
