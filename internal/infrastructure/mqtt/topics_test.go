package mqtt

import "testing"

func TestTopics_Builders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"camera detections", topics.CameraDetections("cam-1a2b3c4d"), "skylark/cameras/cam-1a2b3c4d/detections"},
		{"camera status", topics.CameraStatus("cam-1a2b3c4d"), "skylark/cameras/cam-1a2b3c4d/status"},
		{"worker status", topics.WorkerStatus("worker-gpu-01"), "skylark/workers/worker-gpu-01/status"},
		{"core alert stored", topics.CoreAlertStored("alr-9f8e7d6c"), "skylark/core/alerts/alr-9f8e7d6c"},
		{"system status", topics.SystemStatus(), "skylark/system/status"},
		{"all camera detections", topics.AllCameraDetections(), "skylark/cameras/+/detections"},
		{"all camera status", topics.AllCameraStatus(), "skylark/cameras/+/status"},
		{"all worker status", topics.AllWorkerStatus(), "skylark/workers/+/status"},
		{"all topics", topics.AllTopics(), "skylark/#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCameraIDFromDetectionTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"valid", "skylark/cameras/cam-1a2b3c4d/detections", "cam-1a2b3c4d"},
		{"uuid id", "skylark/cameras/ab12cd34-5678-90ef-ab12-cd3456789012/detections", "ab12cd34-5678-90ef-ab12-cd3456789012"},
		{"wrong prefix", "other/cameras/cam-1/detections", ""},
		{"wrong suffix", "skylark/cameras/cam-1/status", ""},
		{"empty id", "skylark/cameras//detections", ""},
		{"nested id", "skylark/cameras/a/b/detections", ""},
		{"empty topic", "", ""},
		{"prefix only", "skylark/cameras/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CameraIDFromDetectionTopic(tt.topic); got != tt.want {
				t.Errorf("CameraIDFromDetectionTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}
