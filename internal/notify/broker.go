// Package notify provides the in-process broadcast broker behind the
// low-stock alert feed. The broker is an explicit dependency handed to
// the sales pipeline and the WebSocket transport; there is no
// package-level singleton.
package notify

import "sync"

// TopicLowStock is the topic the sales pipeline publishes alerts to.
const TopicLowStock = "low-stock"

// Broker fans plain-text messages out to every subscriber of a topic.
// Delivery is at-most-once per subscriber and fire-and-forget: Publish
// never blocks, and a subscriber whose buffer is full misses the
// message. There is no replay for listeners that subscribe later.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[chan string]struct{}
	buffer int
	closed bool
}

// NewBroker creates a broker whose subscriber channels hold up to
// bufferSize undelivered messages each.
func NewBroker(bufferSize int) *Broker {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Broker{
		topics: make(map[string]map[chan string]struct{}),
		buffer: bufferSize,
	}
}

// Subscribe registers a listener on a topic. The returned cancel func
// removes the subscription and closes the channel; it is safe to call
// more than once. Subscribing to a closed broker returns an already
// closed channel.
func (b *Broker) Subscribe(topic string) (<-chan string, func()) {
	ch := make(chan string, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[chan string]struct{})
		b.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.topics[topic]; ok {
				if _, stillThere := subs[ch]; stillThere {
					delete(subs, ch)
					close(ch)
				}
				if len(subs) == 0 {
					delete(b.topics, topic)
				}
			}
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers message to every current subscriber of topic.
// Subscribers with a full buffer are skipped. Publishing to a topic
// with no subscribers, or to a closed broker, is a no-op.
func (b *Broker) Publish(topic, message string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for ch := range b.topics[topic] {
		select {
		case ch <- message:
		default:
			// slow subscriber: drop rather than block the publisher
		}
	}
}

// SubscriberCount returns the number of active subscriptions on a topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

// Close shuts the broker down: all subscriber channels are closed and
// subsequent Publish/Subscribe calls become no-ops.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.topics {
		for ch := range subs {
			close(ch)
		}
	}
	b.topics = make(map[string]map[chan string]struct{})
}
