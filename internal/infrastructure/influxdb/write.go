package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteDetectionMetric records a face-detection event for a camera.
//
// The write is non-blocking; points are batched and sent asynchronously.
//
//	client.WriteDetectionMetric("cam-1a2b3c4d", 0.94, 2)
func (c *Client) WriteDetectionMetric(cameraID string, confidence float64, faceCount int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"detections",
		map[string]string{
			"camera_id": cameraID,
		},
		map[string]interface{}{
			"confidence": confidence,
			"face_count": faceCount,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCameraStatus records a camera stream status transition
// (e.g. "online", "offline", "degraded").
func (c *Client) WriteCameraStatus(cameraID string, status string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"camera_status",
		map[string]string{
			"camera_id": cameraID,
			"status":    status,
		},
		map[string]interface{}{
			"value": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteAPIMetric records an API request observation for latency and
// traffic dashboards.
func (c *Client) WriteAPIMetric(route string, statusCode int, durationMs float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"api_requests",
		map[string]string{
			"route": route,
		},
		map[string]interface{}{
			"status_code": statusCode,
			"duration_ms": durationMs,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
// Tags should stay low-cardinality; fields carry the data.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
// Use this when recording delayed data, e.g. replayed detection events.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
