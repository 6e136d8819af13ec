package mqtt

import "fmt"

// Topic prefixes for the Skylark MQTT bus.
//
// Detection workers publish under: skylark/cameras/{camera_id}/...
// Core publishes under: skylark/core/... and skylark/system/...
const (
	// TopicPrefix is the base for all Skylark topics.
	TopicPrefix = "skylark"

	// TopicPrefixCameras is the base for per-camera topics.
	TopicPrefixCameras = "skylark/cameras"

	// TopicPrefixWorkers is the base for detection worker topics.
	TopicPrefixWorkers = "skylark/workers"

	// TopicPrefixCore is the base for core-published topics.
	TopicPrefixCore = "skylark/core"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "skylark/system"
)

// Topics provides builders for Skylark MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	detTopic := topics.CameraDetections("cam-1a2b3c4d")
//	// Returns: "skylark/cameras/cam-1a2b3c4d/detections"
type Topics struct{}

// CameraDetections returns the topic a worker publishes detection events on.
//
// Example: skylark/cameras/cam-1a2b3c4d/detections
func (Topics) CameraDetections(cameraID string) string {
	return fmt.Sprintf("%s/%s/detections", TopicPrefixCameras, cameraID)
}

// CameraStatus returns the topic for per-camera stream status.
//
// Example: skylark/cameras/cam-1a2b3c4d/status
func (Topics) CameraStatus(cameraID string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixCameras, cameraID)
}

// WorkerStatus returns the topic for a worker's health status.
//
// Example: skylark/workers/worker-gpu-01/status
func (Topics) WorkerStatus(workerID string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixWorkers, workerID)
}

// CoreAlertStored returns the topic Core publishes after storing an alert.
//
// Example: skylark/core/alerts/alr-9f8e7d6c
func (Topics) CoreAlertStored(alertID string) string {
	return fmt.Sprintf("%s/alerts/%s", TopicPrefixCore, alertID)
}

// SystemStatus returns the system status topic (online/offline, LWT).
//
// Example: skylark/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllCameraDetections returns a pattern matching detection events
// from every camera.
//
// Pattern: skylark/cameras/+/detections
func (Topics) AllCameraDetections() string {
	return fmt.Sprintf("%s/+/detections", TopicPrefixCameras)
}

// AllCameraStatus returns a pattern matching all camera status updates.
//
// Pattern: skylark/cameras/+/status
func (Topics) AllCameraStatus() string {
	return fmt.Sprintf("%s/+/status", TopicPrefixCameras)
}

// AllWorkerStatus returns a pattern matching all worker status updates.
//
// Pattern: skylark/workers/+/status
func (Topics) AllWorkerStatus() string {
	return fmt.Sprintf("%s/+/status", TopicPrefixWorkers)
}

// AllTopics returns a pattern matching all Skylark topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: skylark/#
func (Topics) AllTopics() string {
	return TopicPrefix + "/#"
}

// CameraIDFromDetectionTopic extracts the camera ID from a detection topic.
// Returns "" if the topic does not match the detection scheme.
//
// "skylark/cameras/cam-1a2b3c4d/detections" -> "cam-1a2b3c4d"
func CameraIDFromDetectionTopic(topic string) string {
	const prefix = TopicPrefixCameras + "/"
	const suffix = "/detections"

	if len(topic) <= len(prefix)+len(suffix) {
		return ""
	}
	if topic[:len(prefix)] != prefix {
		return ""
	}
	if topic[len(topic)-len(suffix):] != suffix {
		return ""
	}

	id := topic[len(prefix) : len(topic)-len(suffix)]
	for i := 0; i < len(id); i++ {
		if id[i] == '/' {
			return ""
		}
	}
	return id
}
