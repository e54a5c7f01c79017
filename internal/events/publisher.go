// Package events publishes booking events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/worker"
)

const BookingCreatedQueue = "booking.created"

const (
	DefaultDialTimeout = 5 * time.Second

	publishBuffer  = 64
	publishTimeout = 10 * time.Second
)

type BookingCreatedEvent struct {
	BookingID       string    `json:"bookingId"`
	Name            *string   `json:"name"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	Style           *string   `json:"style"`
	AppointmentDate *string   `json:"appointmentDate"`
	AppointmentTime *string   `json:"appointmentTime"`
	TotalPrice      *float64  `json:"totalPrice"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func NewBookingCreatedEvent(b domain.Booking, at time.Time) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:       b.ID,
		Name:            b.Name,
		Phone:           b.Phone,
		Email:           b.Email,
		Style:           b.Style,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		TotalPrice:      b.TotalPrice,
		OccurredAt:      at.UTC(),
	}
}

// RabbitPublisher keeps one connection and channel to the broker and
// publishes from a background queue, so a slow broker never holds up the
// request that saved the booking. A dropped connection is reopened on the
// next message.
type RabbitPublisher struct {
	url         string
	dialTimeout time.Duration
	loggerf     func(format string, args ...interface{})
	queue       *worker.Queue[domain.Booking]

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitPublisher(url string, dialTimeout time.Duration, loggerf func(format string, args ...interface{})) *RabbitPublisher {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if dialTimeout <= 0 {
		dialTimeout = DefaultDialTimeout
	}
	p := &RabbitPublisher{url: url, dialTimeout: dialTimeout, loggerf: loggerf}
	p.queue = worker.New(publishBuffer, publishTimeout, p.deliver)
	return p
}

// Connect opens the broker connection up front. A failure is not fatal:
// the next publish tries again.
func (p *RabbitPublisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.channel()
	return err
}

// PublishBookingCreated queues the event and returns immediately.
func (p *RabbitPublisher) PublishBookingCreated(_ context.Context, b domain.Booking) error {
	if err := p.queue.Enqueue(b); err != nil {
		return fmt.Errorf("queue booking event: %w", err)
	}
	return nil
}

// Publish sends the event on the shared channel and waits for the result.
func (p *RabbitPublisher) Publish(ctx context.Context, b domain.Booking) error {
	body, err := json.Marshal(NewBookingCreatedEvent(b, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", BookingCreatedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    b.ID,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// Close flushes queued events, bounded by ctx, then closes the connection.
func (p *RabbitPublisher) Close(ctx context.Context) error {
	err := p.queue.Close(ctx)
	p.mu.Lock()
	p.reset()
	p.mu.Unlock()
	return err
}

func (p *RabbitPublisher) deliver(ctx context.Context, b domain.Booking) {
	if err := p.Publish(ctx, b); err != nil {
		p.loggerf("level=error msg=booking event publish failed booking_id=%s err=%v", b.ID, err)
		return
	}
	p.loggerf("level=info msg=booking event published booking_id=%s queue=%s", b.ID, BookingCreatedQueue)
}

// channel must be called with mu held.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.DialConfig(p.url, amqp.Config{
			Locale: "en_US",
			Dial:   amqp.DefaultDial(p.dialTimeout),
		})
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.reset()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		p.reset()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.ch = ch
	return ch, nil
}

func (p *RabbitPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
