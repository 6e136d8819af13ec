package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/skylarkhq/skylark-core/internal/camera"
	"github.com/skylarkhq/skylark-core/internal/infrastructure/logging"
	"github.com/skylarkhq/skylark-core/internal/infrastructure/mqtt"
)

const ingestTimeout = 5 * time.Second

// Broadcaster delivers a stored alert to the owner's connected clients.
// The WebSocket hub implements this; a nil broadcaster disables fan-out.
type Broadcaster interface {
	BroadcastAlert(ownerID string, a *Alert)
}

// Metrics records detection observations. The InfluxDB client
// implements this; a nil metrics sink disables recording.
type Metrics interface {
	WriteDetectionMetric(cameraID string, confidence float64, faceCount int)
}

// Subscriber is the slice of the MQTT client the ingestor needs.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Ingestor consumes detection events published by workers on
// skylark/cameras/{id}/detections, validates them against known
// cameras, stores them, and fans them out.
type Ingestor struct {
	alerts      Repository
	cameras     camera.Repository
	broadcaster Broadcaster
	metrics     Metrics
	logger      *logging.Logger
}

// NewIngestor creates a detection event ingestor. broadcaster and
// metrics may be nil.
func NewIngestor(alerts Repository, cameras camera.Repository, broadcaster Broadcaster, metrics Metrics, logger *logging.Logger) *Ingestor {
	return &Ingestor{
		alerts:      alerts,
		cameras:     cameras,
		broadcaster: broadcaster,
		metrics:     metrics,
		logger:      logger,
	}
}

// Start subscribes to the detection topic on the given client.
func (i *Ingestor) Start(sub Subscriber) error {
	topic := mqtt.Topics{}.AllCameraDetections()
	if err := sub.Subscribe(topic, 1, i.Handle); err != nil {
		return fmt.Errorf("subscribing to detections: %w", err)
	}
	i.logger.Info("detection ingest started", "topic", topic)
	return nil
}

// Handle processes one detection message. The camera ID embedded in
// the topic is authoritative; a camera_id in the payload is ignored if
// it disagrees.
func (i *Ingestor) Handle(topic string, payload []byte) error {
	cameraID := mqtt.CameraIDFromDetectionTopic(topic)
	if cameraID == "" {
		return fmt.Errorf("unexpected detection topic %q", topic)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decoding detection event: %w", err)
	}
	event.CameraID = cameraID

	alert, err := i.Ingest(context.Background(), &event)
	if err != nil {
		return err
	}

	i.logger.Debug("detection ingested",
		"alert_id", alert.ID,
		"camera_id", alert.CameraID,
		"confidence", alert.Confidence,
	)
	return nil
}

// Ingest validates, stores, and fans out a detection event. It is the
// shared core of the MQTT and HTTP ingest paths.
func (i *Ingestor) Ingest(ctx context.Context, event *Event) (*Alert, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, ingestTimeout)
	defer cancel()

	ownerID, err := i.cameras.OwnerOf(ctx, event.CameraID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlertCameraUnknown, event.CameraID)
	}

	alert := &Alert{
		CameraID:   event.CameraID,
		ImageURL:   event.ImageURL,
		Confidence: event.Confidence,
		FaceCount:  event.FaceCount,
	}
	if event.Timestamp != nil {
		alert.Timestamp = *event.Timestamp
	}

	if err := i.alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("storing alert: %w", err)
	}

	if i.metrics != nil {
		i.metrics.WriteDetectionMetric(alert.CameraID, alert.Confidence, alert.FaceCount)
	}
	if i.broadcaster != nil {
		i.broadcaster.BroadcastAlert(ownerID, alert)
	}

	return alert, nil
}
