// Package api implements the HTTP REST API and WebSocket server for Skylark Core.
//
// This package provides:
//   - REST endpoints for account registration, login, and camera CRUD
//   - Worker ingest endpoint for detection alerts (API-key guarded)
//   - WebSocket hub for owner-scoped real-time alert broadcasts
//   - JWT authentication with ticket-based WebSocket auth
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - TLS support for production deployments
//
// # Security
//
// Authentication uses stateless HS256 JWT tokens carried as bearer
// tokens. Every camera and alert read or write is scoped to the
// authenticated owner; a camera belonging to another user is
// indistinguishable from one that does not exist. WebSocket connections
// use single-use tickets to keep tokens out of URLs, and the ticket
// carries the user identity so broadcasts only reach the owner's
// connections.
//
// # Graceful Degradation
//
// The server operates without MQTT and InfluxDB — detection ingest over
// HTTP and all REST reads keep working, only broker-delivered alerts
// and metric writes stop.
package api
