package pubsub

import (
	"context"
	"log/slog"
	"sync"
)

// In-memory implementation for local runs and tests.
type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory() *MemoryPublisherFactory {
	return &MemoryPublisherFactory{
		broker: GetMemoryBroker(),
	}
}

func (f *MemoryPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	return p.broker.Publish(ctx, p.topic, key, message)
}

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

func NewMemoryConsumerFactory(group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{
		broker: GetMemoryBroker(),
		group:  group,
	}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{
		broker: f.broker,
		group:  f.group,
	}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(topic Topic, handler MessageHandler, prototype Prototype) error {
	return c.broker.Subscribe(topic, c.group, handler)
}

// MemoryBroker fans published messages out to every subscribed group.
type MemoryBroker struct {
	subscribers map[Topic]map[string][]MessageHandler
	mu          sync.RWMutex
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = &MemoryBroker{
			subscribers: make(map[Topic]map[string][]MessageHandler),
		}
	})
	return memoryBroker
}

func (b *MemoryBroker) Publish(ctx context.Context, topic Topic, key Key, message Message) error {
	b.mu.RLock()
	groups := b.subscribers[topic]
	handlers := make([]MessageHandler, 0, len(groups))
	for _, groupHandlers := range groups {
		// one handler per group, matching broker delivery semantics
		if len(groupHandlers) > 0 {
			handlers = append(handlers, groupHandlers[0])
		}
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h MessageHandler) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic in message handler", slog.Any("panic", r))
				}
			}()

			if err := h(context.WithoutCancel(ctx), key, message); err != nil {
				slog.Error("message handler failed",
					slog.String("topic", string(topic)),
					slog.String("error", err.Error()))
			}
		}(handler)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(topic Topic, group string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups, exists := b.subscribers[topic]
	if !exists {
		groups = make(map[string][]MessageHandler)
		b.subscribers[topic] = groups
	}
	groups[group] = append(groups[group], handler)

	return nil
}

// Reset clears all subscriptions (useful for testing).
func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers = make(map[Topic]map[string][]MessageHandler)
}

// SubscriberCount returns the number of groups subscribed to a topic.
func (b *MemoryBroker) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers[topic])
}
