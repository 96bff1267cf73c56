package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// AMQPServer answers requests published to a queue.
//
// Responses are published to the default exchange with the ReplyTo of the
// request as routing key and its CorrelationId.
type AMQPServer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	queueName  string
	dispatcher *Dispatcher
}

// NewAMQPServer connects to the broker at url and declares the request queue.
func NewAMQPServer(url, queueName string, dispatcher *Dispatcher) (*AMQPServer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	server := &AMQPServer{
		conn:       conn,
		channel:    channel,
		queueName:  queueName,
		dispatcher: dispatcher,
	}

	if err := server.setup(); err != nil {
		server.Close()
		return nil, fmt.Errorf("setup queue: %w", err)
	}

	return server, nil
}

func (s *AMQPServer) setup() error {
	_, err := s.channel.QueueDeclare(
		s.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// One request at a time, the dispatcher serializes them anyway
	return s.channel.Qos(1, 0, false)
}

// Serve answers requests until ctx is cancelled or the channel is closed.
func (s *AMQPServer) Serve(ctx context.Context) error {
	deliveries, err := s.channel.Consume(
		s.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Info().Str("queue", s.queueName).Msg("serving storage calls")

	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("stopping storage call consumption")
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			s.handle(ctx, delivery)
		}
	}
}

func (s *AMQPServer) handle(ctx context.Context, delivery amqp091.Delivery) {
	if delivery.ReplyTo == "" {
		log.Warn().Str("correlation_id", delivery.CorrelationId).Msg("dropping storage call without reply queue")
		delivery.Nack(false, false)
		return
	}

	response := s.dispatcher.DispatchJSON(ctx, delivery.Body)

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.channel.PublishWithContext(
		publishCtx,
		"",               // default exchange
		delivery.ReplyTo, // routing key
		false,            // mandatory
		false,            // immediate
		amqp091.Publishing{
			ContentType:   "application/json",
			CorrelationId: delivery.CorrelationId,
			Timestamp:     time.Now(),
			Body:          response,
		},
	)
	if err != nil {
		// The call has been executed, requeueing would execute it again
		log.Error().Err(err).Str("correlation_id", delivery.CorrelationId).Msg("failed to publish storage call response")
		delivery.Nack(false, false)
		return
	}

	delivery.Ack(false)
}

func (s *AMQPServer) Close() error {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
