package mqtt

import "errors"

// Sentinel errors for MQTT operations. Callers should test with
// errors.Is since most are wrapped with context.
var (
	// ErrNotConnected indicates an operation was attempted while
	// disconnected from the broker.
	ErrNotConnected = errors.New("mqtt: not connected")

	// ErrConnectionFailed indicates the initial broker connection
	// could not be established.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrTimeout indicates a broker operation did not complete in time.
	ErrTimeout = errors.New("mqtt: operation timed out")

	// ErrInvalidTopic indicates an empty or malformed topic.
	ErrInvalidTopic = errors.New("mqtt: invalid topic")

	// ErrInvalidQoS indicates a QoS level outside 0-2.
	ErrInvalidQoS = errors.New("mqtt: invalid qos")

	// ErrPayloadTooLarge indicates a payload over the size limit.
	ErrPayloadTooLarge = errors.New("mqtt: payload too large")

	// ErrNilHandler indicates Subscribe was called without a handler.
	ErrNilHandler = errors.New("mqtt: nil message handler")
)
