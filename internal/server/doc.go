// Package server implements the HTTP and WebSocket surface of MoodSync.
//
// The implementation is organized into specialized files: configuration,
// the hub (connection registry and event loop), per-connection clients, the
// room directory, broadcast routing, the companion scheduler, and the HTTP
// handlers for accounts, the assistant endpoints and health.
package server
