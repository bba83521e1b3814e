package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler processes one consumed message. Returning an error keeps
// the message uncommitted; the consumer retries it in place until the
// handler succeeds or the context is cancelled, so the partition offset
// never advances past a failed message.
type MessageHandler func(ctx context.Context, msg Message) error

const defaultRetryBackoff = 5 * time.Second

// messageReader is the subset of kafka.Reader the consumer drives.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer wraps a kafka-go reader in a consumer group.
type Consumer struct {
	reader       messageReader
	handler      MessageHandler
	retryBackoff time.Duration
	closed       bool
	mu           sync.RWMutex
}

func NewConsumer(brokers []string, topic, groupID string, handler MessageHandler) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if groupID == "" {
		return nil, fmt.Errorf("group ID cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		Logger:  kafka.LoggerFunc(func(msg string, args ...any) {}),
	})

	return &Consumer{
		reader:       reader,
		handler:      handler,
		retryBackoff: defaultRetryBackoff,
	}, nil
}

// Start consumes until the context is cancelled or the consumer is closed.
func (c *Consumer) Start(ctx context.Context) error {
	for {
		c.mu.RLock()
		if c.closed {
			c.mu.RUnlock()
			return ErrConsumerClosed
		}
		c.mu.RUnlock()

		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		msg := Message{
			Key:       string(kafkaMsg.Key),
			Value:     kafkaMsg.Value,
			Topic:     kafkaMsg.Topic,
			Partition: kafkaMsg.Partition,
			Offset:    kafkaMsg.Offset,
			Timestamp: kafkaMsg.Time,
			Headers:   make(map[string]string, len(kafkaMsg.Headers)),
		}
		for _, h := range kafkaMsg.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := c.process(ctx, msg); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

// process invokes the handler, retrying the same message after a backoff
// on failure. Committing the next message would advance the group offset
// past this one, so the loop never moves on while the handler errs.
func (c *Consumer) process(ctx context.Context, msg Message) error {
	for {
		err := c.handler(ctx, msg)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryBackoff):
		}
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}
