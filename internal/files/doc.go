// Package files locates monthly FFT extract workbooks on disk. Each
// survey stream publishes one workbook per reporting period, named by
// a fixed pattern; discovery finds the newest file per stream so a run
// always picks up the latest month without manual selection.
package files
