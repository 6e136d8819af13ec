package mqtt

import (
	"fmt"
)

// Subscribe registers a handler for messages matching the topic filter.
// Wildcards are supported: + matches one level, # matches all remaining.
//
// Subscriptions survive reconnects - the client re-subscribes
// automatically when the broker connection is restored.
//
//	err := client.Subscribe(topics.AllCameraDetections(), 1, func(topic string, payload []byte) error {
//	    return ingestor.Handle(topic, payload)
//	})
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	if qos > maxQoS {
		return fmt.Errorf("%w: qos must be 0, 1, or 2, got %d", ErrInvalidQoS, qos)
	}

	if handler == nil {
		return ErrNilHandler
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	// Track before subscribing so a reconnect during the subscribe
	// call still restores it.
	c.subMu.Lock()
	c.subscriptions[topic] = subscription{topic: topic, qos: qos, handler: handler}
	c.subMu.Unlock()

	token := c.client.Subscribe(topic, qos, c.wrapHandler(handler))
	if !token.WaitTimeout(defaultPublishTimeout) {
		c.removeSubscription(topic)
		return fmt.Errorf("%w: subscribe to %s", ErrTimeout, topic)
	}
	if err := token.Error(); err != nil {
		c.removeSubscription(topic)
		return fmt.Errorf("subscribe to %s failed: %w", topic, err)
	}

	return nil
}

// Unsubscribe removes the subscription for the given topic filter.
func (c *Client) Unsubscribe(topic string) error {
	if topic == "" {
		return ErrInvalidTopic
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Unsubscribe(topic)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: unsubscribe from %s", ErrTimeout, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("unsubscribe from %s failed: %w", topic, err)
	}

	c.removeSubscription(topic)
	return nil
}

// SubscriptionCount returns the number of active subscriptions.
func (c *Client) SubscriptionCount() int {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	return len(c.subscriptions)
}

// HasSubscription reports whether the client is subscribed to the
// exact topic filter given.
func (c *Client) HasSubscription(topic string) bool {
	c.subMu.RLock()
	defer c.subMu.RUnlock()
	_, ok := c.subscriptions[topic]
	return ok
}

func (c *Client) removeSubscription(topic string) {
	c.subMu.Lock()
	delete(c.subscriptions, topic)
	c.subMu.Unlock()
}
