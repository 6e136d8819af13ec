package alert

import (
	"errors"
	"time"
)

// Alert is a detection event attached to a camera. Workers publish
// these; Core stores them and fans them out to the owner's clients.
type Alert struct {
	ID         string    `json:"id"`
	CameraID   string    `json:"camera_id"`
	ImageURL   string    `json:"image_url,omitempty"`
	Confidence float64   `json:"confidence"`
	FaceCount  int       `json:"face_count"`
	Timestamp  time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event is the wire payload a detection worker publishes, over MQTT or
// the HTTP ingest endpoint. Timestamp is optional; Core stamps receipt
// time when it is absent.
type Event struct {
	CameraID   string     `json:"camera_id"`
	ImageURL   string     `json:"image_url,omitempty"`
	Confidence float64    `json:"confidence"`
	FaceCount  int        `json:"face_count"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Validate checks an inbound detection event.
func (e *Event) Validate() error {
	if e.CameraID == "" {
		return errors.New("camera_id is required")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return errors.New("confidence must be between 0 and 1")
	}
	if e.FaceCount < 0 {
		return errors.New("face_count must not be negative")
	}
	return nil
}

// ErrAlertCameraUnknown indicates a detection event referenced a
// camera ID that does not exist.
var ErrAlertCameraUnknown = errors.New("alert references unknown camera")
