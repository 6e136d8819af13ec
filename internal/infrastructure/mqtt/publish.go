package mqtt

import (
	"fmt"
)

const (
	// maxPayloadSize limits published payloads to 1MB.
	maxPayloadSize = 1024 * 1024
)

// Publish sends a message to the specified topic.
//
// QoS levels:
//
//	0 - At most once (fire and forget)
//	1 - At least once (acknowledged delivery)
//	2 - Exactly once (assured delivery)
//
// Retained messages are stored by the broker and delivered to
// new subscribers immediately upon subscription.
//
//	err := client.Publish("skylark/cameras/cam-1a2b3c4d/detections", payload, 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	if qos > maxQoS {
		return fmt.Errorf("%w: qos must be 0, 1, or 2, got %d", ErrInvalidQoS, qos)
	}

	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes",
			ErrPayloadTooLarge, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: publish to %s", ErrTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s failed: %w", topic, err)
	}

	return nil
}
