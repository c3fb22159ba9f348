package mocks

import (
	"context"
	"schedly/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
)

// inertClient drops every message. Service tests use it so that async
// publish goroutines cannot race test teardown.
type inertClient struct {
}

// Consume implements kafka.Client.
func (k *inertClient) Consume(_ context.Context, _, _ string, _ func(message kafkaGo.Message)) {

}

// Reader implements kafka.Client.
func (k *inertClient) Reader(_, _ string) *kafkaGo.Reader {
	return nil
}

// SendMessages implements kafka.Client.
func (k *inertClient) SendMessages(_ context.Context, _ string, _ ...kafka.Message) error {
	return nil
}

func NewInertClient() kafka.Client {
	return &inertClient{}
}
