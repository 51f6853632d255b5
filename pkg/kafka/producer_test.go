package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestPublishEncodesValues(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "gzip")

	require.NoError(t, p.Publish(context.Background(), "reports", []byte("AAPL"), map[string]int{"bars": 3}))
	require.NoError(t, p.Publish(context.Background(), "reports", nil, "raw"))
	require.NoError(t, p.PublishMessage(context.Background(), "logs", []byte("bytes")))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "reports", w.msgs[0].Topic)
	assert.Equal(t, []byte("AAPL"), w.msgs[0].Key)
	assert.JSONEq(t, `{"bars":3}`, string(w.msgs[0].Value))
	assert.Equal(t, "raw", string(w.msgs[1].Value))
	assert.Equal(t, "logs", w.msgs[2].Topic)
	assert.Nil(t, w.msgs[2].Key)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducerWithWriter(&fakeWriter{err: boom}, "gzip")
	err := p.Publish(context.Background(), "reports", nil, "x")
	assert.ErrorIs(t, err, boom)
}

func TestPublishRejectsUnencodable(t *testing.T) {
	p := NewProducerWithWriter(&fakeWriter{}, "gzip")
	assert.Error(t, p.Publish(context.Background(), "reports", nil, make(chan int)))
}
