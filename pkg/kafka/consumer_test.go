package kafka

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

type fakeReader struct {
	messages  []kgo.Message
	fetchPos  int
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kgo.Message, error) {
	if r.fetchPos >= len(r.messages) {
		return kgo.Message{}, io.EOF
	}
	msg := r.messages[r.fetchPos]
	r.fetchPos++
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kgo.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func newTestConsumer(reader *fakeReader, handler MessageHandler) *Consumer {
	return &Consumer{
		reader:       reader,
		handler:      handler,
		retryBackoff: time.Millisecond,
	}
}

func TestStart_CommitsInOrder(t *testing.T) {
	reader := &fakeReader{messages: []kgo.Message{
		{Offset: 10, Value: []byte("a")},
		{Offset: 11, Value: []byte("b")},
	}}

	var seen []int64
	c := newTestConsumer(reader, func(ctx context.Context, msg Message) error {
		seen = append(seen, msg.Offset)
		return nil
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("expected clean stop at end of stream, got %v", err)
	}
	if len(seen) != 2 || seen[0] != 10 || seen[1] != 11 {
		t.Errorf("unexpected handled offsets %v", seen)
	}
	if len(reader.committed) != 2 || reader.committed[0] != 10 || reader.committed[1] != 11 {
		t.Errorf("unexpected committed offsets %v", reader.committed)
	}
}

func TestStart_RetriesFailedMessageInPlace(t *testing.T) {
	reader := &fakeReader{messages: []kgo.Message{
		{Offset: 10, Value: []byte("a")},
		{Offset: 11, Value: []byte("b")},
	}}

	failures := 2
	var seen []int64
	c := newTestConsumer(reader, func(ctx context.Context, msg Message) error {
		seen = append(seen, msg.Offset)
		if msg.Offset == 10 && failures > 0 {
			failures--
			return errors.New("delivery failed")
		}
		return nil
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
	want := []int64{10, 10, 10, 11}
	if len(seen) != len(want) {
		t.Fatalf("expected attempts %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected attempts %v, got %v", want, seen)
		}
	}
	// The failed offset is committed only after it finally succeeds, so
	// it can never be skipped by a later commit.
	if len(reader.committed) != 2 || reader.committed[0] != 10 || reader.committed[1] != 11 {
		t.Errorf("unexpected committed offsets %v", reader.committed)
	}
}

func TestStart_StopsRetryingOnCancel(t *testing.T) {
	reader := &fakeReader{messages: []kgo.Message{{Offset: 10}}}

	ctx, cancel := context.WithCancel(context.Background())
	c := newTestConsumer(reader, func(ctx context.Context, msg Message) error {
		cancel()
		return errors.New("delivery failed")
	})

	if err := c.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(reader.committed) != 0 {
		t.Errorf("nothing must be committed after cancellation, got %v", reader.committed)
	}
}

func TestNewConsumer_Validation(t *testing.T) {
	handler := func(ctx context.Context, msg Message) error { return nil }

	if _, err := NewConsumer(nil, "topic", "group", handler); err == nil {
		t.Error("expected error for missing brokers")
	}
	if _, err := NewConsumer([]string{"localhost:9092"}, "", "group", handler); err == nil {
		t.Error("expected error for missing topic")
	}
	if _, err := NewConsumer([]string{"localhost:9092"}, "topic", "", handler); err == nil {
		t.Error("expected error for missing group")
	}
	if _, err := NewConsumer([]string{"localhost:9092"}, "topic", "group", nil); err == nil {
		t.Error("expected error for missing handler")
	}
}
