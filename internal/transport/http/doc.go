// Package http contains the HTTP handlers for the run-trigger web
// surface: starting disclosure-control runs, polling their state, and
// the health endpoint.
package http
