// Package dataprocessing loads monthly FFT survey extracts from Excel
// workbooks into the in-memory tables the suppression engine consumes.
//
// Extract layouts drift between survey streams and between months:
// sheet names vary, header spellings vary ("ICB_Code" vs "ICB Code"),
// and some streams omit the percentage columns entirely. The loader
// resolves all of that through the per-service header alias records in
// internal/config and reports exactly which canonical columns it
// managed to map, so downstream suppression can fail closed on
// anything missing instead of silently skipping a check.
package dataprocessing
