package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrPublisherBusy is returned when the outgoing buffer is full.
	ErrPublisherBusy = errors.New("booking event buffer full")
	// ErrPublisherClosed is returned after Close.
	ErrPublisherClosed = errors.New("publisher closed")
)

const (
	defaultDialTimeout = 2 * time.Second
	defaultRetryAfter  = 5 * time.Second
	defaultBuffer      = 256
	publishTimeout     = 2 * time.Second
)

// Dial connects to the broker, giving up after timeout. The timeout covers
// both the TCP connect and the AMQP handshake.
func Dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Publisher sends booking events to BookingEventQueue. PublishBooking only
// enqueues into a bounded buffer; a background goroutine owns the broker
// connection and drains it. After a failed dial no new dial is attempted
// for retryAfter and events arriving meanwhile are dropped with a warning.
type Publisher struct {
	url         string
	log         *slog.Logger
	dialTimeout time.Duration
	retryAfter  time.Duration

	events    chan BookingEvent
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// owned by run
	conn     *amqp.Connection
	ch       *amqp.Channel
	nextDial time.Time
}

func NewPublisher(url string, log *slog.Logger) *Publisher {
	return newPublisher(url, log, defaultDialTimeout, defaultRetryAfter, defaultBuffer)
}

func newPublisher(url string, log *slog.Logger, dialTimeout, retryAfter time.Duration, buffer int) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	p := &Publisher{
		url:         url,
		log:         log,
		dialTimeout: dialTimeout,
		retryAfter:  retryAfter,
		events:      make(chan BookingEvent, buffer),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	go p.run()
	return p
}

// PublishBooking queues ev for delivery without waiting on the broker.
func (p *Publisher) PublishBooking(ctx context.Context, ev BookingEvent) error {
	select {
	case <-p.done:
		return ErrPublisherClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case p.events <- ev:
		return nil
	default:
		p.log.Warn("booking event dropped", "event_id", ev.EventID, "type", ev.Type, "err", ErrPublisherBusy)
		return ErrPublisherBusy
	}
}

func (p *Publisher) run() {
	defer close(p.stopped)
	defer p.reset()
	for {
		select {
		case ev := <-p.events:
			p.deliver(ev)
		case <-p.done:
			for {
				select {
				case ev := <-p.events:
					p.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(ev BookingEvent) {
	if err := p.send(ev); err != nil {
		p.log.Warn("booking event not published", "event_id", ev.EventID, "type", ev.Type, "err", err)
	}
}

func (p *Publisher) send(ev BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ch, err := p.channel()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err = ch.PublishWithContext(ctx, "", BookingEventQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         string(ev.Type),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.reset()
		return err
	}
	return nil
}

// channel returns an open channel, dialing and declaring the queue when
// needed and the retry window has passed.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	if now := time.Now(); now.Before(p.nextDial) {
		return nil, fmt.Errorf("broker unavailable, next dial in %s", p.nextDial.Sub(now).Round(time.Millisecond))
	}

	conn, err := Dial(p.url, p.dialTimeout)
	if err != nil {
		p.nextDial = time.Now().Add(p.retryAfter)
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.nextDial = time.Now().Add(p.retryAfter)
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingEventQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.nextDial = time.Now().Add(p.retryAfter)
		return nil, fmt.Errorf("queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// Close stops accepting events, flushes what is buffered and releases the
// broker connection.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	<-p.stopped
	return nil
}
