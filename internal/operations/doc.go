// Package operations orchestrates the monthly disclosure-control run.
//
// A run covers one or more survey streams. For each stream the
// pipeline discovers the latest extract, parses it to a ward-level
// table, rolls the counts up the geography hierarchy, applies the
// suppression cascade top-down, builds the redacted report tables and
// the national provider split, and exports the published files.
//
// Streams are independent: a stream whose extract fails to parse or
// suppress is marked failed and produces no output, while the rest of
// the batch carries on. The run as a whole reports failed if any
// stream failed.
//
// The Manager tracks run state in memory and broadcasts step
// transitions over the WebSocket hub so connected clients can follow
// progress live.
package operations
