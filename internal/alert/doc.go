// Package alert stores and distributes detection events.
//
// Detection workers publish events over MQTT (or the HTTP ingest
// endpoint for deployments without a broker); the Ingestor validates
// them against known cameras, persists them, records a metric, and
// hands them to the WebSocket hub for owner-scoped fan-out.
//
// Reads join through the cameras table and filter on owner_id, so
// alerts inherit the camera ownership gate.
package alert
