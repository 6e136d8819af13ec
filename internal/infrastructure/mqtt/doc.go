// Package mqtt wraps the Eclipse Paho client with the connection
// management Skylark needs: automatic reconnection with re-subscription,
// a last-will status message on skylark/system/status, panic recovery
// around message handlers, and consistent topic naming via Topics.
//
// Detection workers publish events on skylark/cameras/{id}/detections;
// Core subscribes with a wildcard filter and forwards the events to the
// alert ingestor. The client is safe for concurrent use.
package mqtt
