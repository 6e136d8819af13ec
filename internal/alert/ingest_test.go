package alert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/skylarkhq/skylark-core/internal/camera"
	"github.com/skylarkhq/skylark-core/internal/infrastructure/logging"
)

type captureBroadcaster struct {
	ownerID string
	alert   *Alert
	calls   int
}

func (c *captureBroadcaster) BroadcastAlert(ownerID string, a *Alert) {
	c.ownerID = ownerID
	c.alert = a
	c.calls++
}

type captureMetrics struct {
	cameraID   string
	confidence float64
	faceCount  int
	calls      int
}

func (c *captureMetrics) WriteDetectionMetric(cameraID string, confidence float64, faceCount int) {
	c.cameraID = cameraID
	c.confidence = confidence
	c.faceCount = faceCount
	c.calls++
}

func testIngestor(t *testing.T) (*Ingestor, *captureBroadcaster, *captureMetrics, Repository) {
	t.Helper()

	db := testDB(t)
	alerts := NewRepository(db)
	cameras := camera.NewRepository(db)
	bc := &captureBroadcaster{}
	metrics := &captureMetrics{}

	ing := NewIngestor(alerts, cameras, bc, metrics, logging.Default())
	return ing, bc, metrics, alerts
}

func TestIngestor_Ingest(t *testing.T) {
	ing, bc, metrics, alerts := testIngestor(t)
	ctx := context.Background()

	a, err := ing.Ingest(ctx, &Event{CameraID: "cam-alice", Confidence: 0.87, FaceCount: 1})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if a.ID == "" {
		t.Error("Ingest() should return the stored alert with its ID")
	}

	// Stored.
	stored, err := alerts.ListByCamera(ctx, "usr-alice", "cam-alice", 0)
	if err != nil {
		t.Fatalf("ListByCamera() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d alerts, want 1", len(stored))
	}

	// Broadcast to the camera's owner only.
	if bc.calls != 1 {
		t.Fatalf("broadcast calls = %d, want 1", bc.calls)
	}
	if bc.ownerID != "usr-alice" {
		t.Errorf("broadcast owner = %q, want usr-alice", bc.ownerID)
	}

	// Metric recorded.
	if metrics.calls != 1 || metrics.cameraID != "cam-alice" || metrics.confidence != 0.87 {
		t.Errorf("metric = %+v, want one write for cam-alice", metrics)
	}
}

func TestIngestor_Ingest_UnknownCamera(t *testing.T) {
	ing, bc, _, _ := testIngestor(t)

	_, err := ing.Ingest(context.Background(), &Event{CameraID: "cam-nope", Confidence: 0.5})
	if !errors.Is(err, ErrAlertCameraUnknown) {
		t.Errorf("Ingest() error = %v, want ErrAlertCameraUnknown", err)
	}
	if bc.calls != 0 {
		t.Error("no broadcast for rejected events")
	}
}

func TestIngestor_Ingest_Invalid(t *testing.T) {
	ing, _, _, _ := testIngestor(t)

	if _, err := ing.Ingest(context.Background(), &Event{CameraID: "cam-alice", Confidence: 1.5}); err == nil {
		t.Error("Ingest() should reject out-of-range confidence")
	}
}

func TestIngestor_Handle(t *testing.T) {
	ing, bc, _, _ := testIngestor(t)

	payload, _ := json.Marshal(Event{Confidence: 0.73, FaceCount: 3})
	err := ing.Handle("skylark/cameras/cam-alice/detections", payload)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if bc.calls != 1 {
		t.Fatalf("broadcast calls = %d, want 1", bc.calls)
	}
	if bc.alert.CameraID != "cam-alice" {
		t.Errorf("camera ID from topic = %q, want cam-alice", bc.alert.CameraID)
	}
}

func TestIngestor_Handle_TopicAuthoritative(t *testing.T) {
	ing, bc, _, _ := testIngestor(t)

	// The payload claims bob's camera; the topic says alice's. The
	// topic wins.
	payload, _ := json.Marshal(Event{CameraID: "cam-bob", Confidence: 0.6})
	if err := ing.Handle("skylark/cameras/cam-alice/detections", payload); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if bc.alert.CameraID != "cam-alice" {
		t.Errorf("camera ID = %q, want cam-alice (topic authoritative)", bc.alert.CameraID)
	}
	if bc.ownerID != "usr-alice" {
		t.Errorf("owner = %q, want usr-alice", bc.ownerID)
	}
}

func TestIngestor_Handle_BadInput(t *testing.T) {
	ing, _, _, _ := testIngestor(t)

	if err := ing.Handle("skylark/other/topic", []byte("{}")); err == nil {
		t.Error("Handle() should reject unexpected topics")
	}
	if err := ing.Handle("skylark/cameras/cam-alice/detections", []byte("not json")); err == nil {
		t.Error("Handle() should reject malformed payloads")
	}
}
