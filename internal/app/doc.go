// Package app wires the service together: configuration, logging,
// telemetry, the suppression pipeline, the WebSocket hub and the HTTP
// router, plus the server lifecycle with graceful shutdown.
package app
