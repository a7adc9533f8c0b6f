// Package rabbitmq publishes order updates to a RabbitMQ fanout exchange, where
// downstream notifiers bind their own queues.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"tracking/internal/adapters/out/events"
	"tracking/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is used when no exchange name is configured.
const DefaultExchange = "order_status_fanout"

// confirmBuffer sizes the NotifyPublish channel. The listener drains it
// continuously, so it only absorbs bursts.
const confirmBuffer = 64

// ErrPublishNacked is returned when the broker refuses a message.
var ErrPublishNacked = errors.New("publish NACK from broker")

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	GetNextPublishSeqNo() uint64
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implements ports.OrderEventPublisher over one AMQP channel with
// publisher confirms.
//
// Confirms are matched to messages by delivery tag. A background listener
// drains the confirm stream and wakes the waiting Publish call; a confirm
// whose caller already gave up is dropped, so it can never be paired with a
// later message.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time

	// publishMu keeps sequence number lookup and publish atomic.
	publishMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan amqp.Confirmation
	closed  bool
}

// Dial connects to url, declares a durable fanout exchange and enables
// publisher confirms.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer))

	p := newPublisher(ch, acks, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, acks <-chan amqp.Confirmation, exchange string) *Publisher {
	p := &Publisher{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
		pending:  make(map[uint64]chan amqp.Confirmation),
	}
	if acks != nil {
		go p.listen(acks)
	}
	return p
}

// listen routes confirms to their waiters until the broker closes the
// confirm stream, then fails every outstanding publish.
func (p *Publisher) listen(acks <-chan amqp.Confirmation) {
	for conf := range acks {
		p.mu.Lock()
		waiter, ok := p.pending[conf.DeliveryTag]
		delete(p.pending, conf.DeliveryTag)
		p.mu.Unlock()

		if ok {
			waiter <- conf
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for tag, waiter := range p.pending {
		close(waiter)
		delete(p.pending, tag)
	}
}

// Publish sends the event as persistent JSON, routed by status name, and
// waits for the broker confirm of that exact message or for ctx.
func (p *Publisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	body, err := json.Marshal(events.NewMessage(event))
	if err != nil {
		return err
	}

	tag, waiter, err := p.send(ctx, event, body)
	if err != nil {
		return err
	}

	select {
	case conf, ok := <-waiter:
		if !ok {
			return amqp.ErrClosed
		}
		if !conf.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		p.forget(tag)
		return ctx.Err()
	}
}

func (p *Publisher) send(ctx context.Context, event ports.OrderEvent, body []byte) (uint64, chan amqp.Confirmation, error) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	tag := p.ch.GetNextPublishSeqNo()
	waiter := make(chan amqp.Confirmation, 1)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return 0, nil, amqp.ErrClosed
	}
	p.pending[tag] = waiter
	p.mu.Unlock()

	err := p.ch.PublishWithContext(
		ctx,
		p.exchange,
		event.Status.String(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.OrderID.String(),
			Timestamp:    p.now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.forget(tag)
		return 0, nil, err
	}
	return tag, waiter, nil
}

func (p *Publisher) forget(tag uint64) {
	p.mu.Lock()
	delete(p.pending, tag)
	p.mu.Unlock()
}

// Ping reports whether the connection is still open.
func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// Close closes the connection and its channel.
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
