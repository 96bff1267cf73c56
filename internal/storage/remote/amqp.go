package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ledger-zero/backend/internal/rpc"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var errTransportClosed = errors.New("transport closed")

// AMQPTransport publishes requests to the request queue of a storage server
// and receives the responses on an exclusive reply queue.
type AMQPTransport struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queueName  string
	replyQueue string

	mu      sync.Mutex
	pending map[string]chan rpc.Response
	closed  bool
}

// NewAMQPTransport connects to the broker at url. Requests are published
// to the queue with the name queueName.
func NewAMQPTransport(url, queueName string) (*AMQPTransport, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	t := &AMQPTransport{
		conn:      conn,
		channel:   channel,
		queueName: queueName,
		pending:   make(map[string]chan rpc.Response),
	}

	replies, err := t.setup()
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("setup reply queue: %w", err)
	}

	go t.receive(replies)
	return t, nil
}

func (t *AMQPTransport) setup() (<-chan amqp091.Delivery, error) {
	queue, err := t.channel.QueueDeclare(
		"",    // name, generated by the broker
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	t.replyQueue = queue.Name

	return t.channel.Consume(
		t.replyQueue, // queue
		"",           // consumer
		true,         // auto-ack
		true,         // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
}

// receive hands responses to the waiting calls until the channel is closed.
func (t *AMQPTransport) receive(replies <-chan amqp091.Delivery) {
	for delivery := range replies {
		var response rpc.Response
		if err := json.Unmarshal(delivery.Body, &response); err != nil {
			log.Error().Err(err).Str("correlation_id", delivery.CorrelationId).Msg("dropping undecodable storage response")
			continue
		}

		t.mu.Lock()
		ch, ok := t.pending[delivery.CorrelationId]
		delete(t.pending, delivery.CorrelationId)
		t.mu.Unlock()

		if !ok {
			log.Warn().Str("correlation_id", delivery.CorrelationId).Msg("dropping storage response without waiting call")
			continue
		}

		ch <- response
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for id, ch := range t.pending {
		close(ch)
		delete(t.pending, id)
	}
}

func (t *AMQPTransport) Call(ctx context.Context, request rpc.Request) (rpc.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return rpc.Response{}, err
	}

	id := uuid.New().String()
	ch := make(chan rpc.Response, 1)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return rpc.Response{}, errTransportClosed
	}
	t.pending[id] = ch
	t.mu.Unlock()

	err = t.channel.PublishWithContext(
		ctx,
		"",          // default exchange
		t.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:   "application/json",
			CorrelationId: id,
			ReplyTo:       t.replyQueue,
			Timestamp:     time.Now(),
			Body:          body,
		},
	)
	if err != nil {
		t.forget(id)
		return rpc.Response{}, fmt.Errorf("publish request: %w", err)
	}

	select {
	case response, ok := <-ch:
		if !ok {
			return rpc.Response{}, errTransportClosed
		}
		return response, nil
	case <-ctx.Done():
		t.forget(id)
		return rpc.Response{}, ctx.Err()
	}
}

func (t *AMQPTransport) forget(id string) {
	t.mu.Lock()
	delete(t.pending, id)
	t.mu.Unlock()
}

func (t *AMQPTransport) Close() error {
	if t.channel != nil {
		t.channel.Close()
	}
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}
