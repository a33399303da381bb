// Package api implements the HTTP REST API and WebSocket server for the
// e-paper device mock.
//
// This package provides:
//   - REST endpoints for variables, templates, bitmaps, and settings
//   - WebSocket hub for real-time state change broadcasts
//   - Synthetic device status endpoints (system, network, MQTT, display)
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for deployments behind real certificates
//
// # Architecture
//
// The server sits between front-end clients (configuration UIs, test
// harnesses) and the shared state store. Mutations arrive over REST or the
// WebSocket channel, are applied to the store (which persists every change),
// and are then fanned out to the other connected observers so all clients
// converge on the same state.
//
// # Graceful Degradation
//
// MQTT mirroring and InfluxDB telemetry are optional. The server operates
// fully without either; when configured, variable changes are additionally
// mirrored to the broker and recorded as time-series points.
package api
