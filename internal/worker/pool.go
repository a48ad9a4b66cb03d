package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/logger"
)

// Queue and exchange defaults.
const (
	DefaultQueue    = "analysis_jobs"
	DefaultExchange = "analysis_results"
	DefaultWorkers  = 3
)

// Publisher sends a result body under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Options configures a Pool.
type Options struct {
	URL      string
	Queue    string
	Exchange string
	Workers  int
}

// Pool runs a fixed number of consumers on one RabbitMQ connection.
type Pool struct {
	opts      Options
	processor *Processor
	logger    *zap.Logger
}

// NewPool creates a consumer pool; empty options take the defaults.
func NewPool(opts Options, processor *Processor, log *zap.Logger) *Pool {
	if opts.Queue == "" {
		opts.Queue = DefaultQueue
	}
	if opts.Exchange == "" {
		opts.Exchange = DefaultExchange
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Pool{opts: opts, processor: processor, logger: logger.OrNop(log)}
}

// RoutingKey is the results routing key for a job.
func RoutingKey(jobID string) string {
	if jobID == "" {
		jobID = "unknown"
	}
	return "analysis." + jobID
}

// Run consumes until ctx is cancelled or a consumer fails.
func (p *Pool) Run(ctx context.Context) error {
	conn, err := amqp.Dial(p.opts.URL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := p.declare(conn); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Closing the connection ends every delivery channel.
			_ = conn.Close()
		case <-done:
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := range p.opts.Workers {
		p.logger.Info("worker started", zap.Int("worker", i+1), zap.String("queue", p.opts.Queue))
		g.Go(func() error {
			return p.consume(gctx, conn, i)
		})
	}

	err = g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (p *Pool) declare(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.opts.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.ExchangeDeclare(
		p.opts.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}

func (p *Pool) consume(ctx context.Context, conn *amqp.Connection, id int) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: error opening channel: %w", id+1, err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("worker %d: failed to set qos: %w", id+1, err)
	}
	msgs, err := ch.Consume(
		p.opts.Queue,
		fmt.Sprintf("resume-matcher-%d", id+1),
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("worker %d: error consuming: %w", id+1, err)
	}

	pub := &channelPublisher{ch: ch, exchange: p.opts.Exchange}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("worker %d: delivery channel closed", id+1)
			}
			if err := p.Handle(ctx, pub, d.Body); err != nil {
				p.logger.Error("failed to publish result", zap.Int("worker", id+1), zap.Error(err))
			}
			if err := d.Ack(false); err != nil {
				p.logger.Warn("failed to ack message", zap.Int("worker", id+1), zap.Error(err))
			}
		}
	}
}

// Handle processes one message body and publishes its result.
func (p *Pool) Handle(ctx context.Context, pub Publisher, body []byte) error {
	result := p.processor.Process(ctx, body)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return pub.Publish(ctx, RoutingKey(result.JobID), payload)
}

type channelPublisher struct {
	ch       *amqp.Channel
	exchange string
}

func (c *channelPublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	return c.ch.Publish(
		c.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
