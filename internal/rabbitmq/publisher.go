package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/cafe-maiolini/internal/config"
	"github.com/magabrotheeeer/cafe-maiolini/internal/lib/sl"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// LeadPublisher отправляет заявки с формы контактов.
type LeadPublisher interface {
	PublishLead(ctx context.Context, lead models.Lead) error
	Close() error
}

// PublishMessage публикует сообщение в RabbitMQ в виде JSON.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует заявки в exchange брокера.
// Канал amqp не потокобезопасен, поэтому публикации сериализуются.
// После обрыва соединения или канала следующая публикация переподключается.
type Publisher struct {
	mu         sync.Mutex
	url        string
	queues     []QueueConfig
	conn       *amqp.Connection
	ch         *amqp.Channel
	closed     chan *amqp.Error
	exchange   string
	routingKey string
	log        *slog.Logger
}

// NewPublisher подключается к брокеру и объявляет exchange и очередь заявок.
func NewPublisher(cfg config.RabbitMQ, log *slog.Logger) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	conn, err := Connect(cfg.URL, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := &Publisher{
		url:        cfg.URL,
		queues:     []QueueConfig{{QueueName: cfg.Queue, RoutingKey: cfg.RoutingKey}},
		conn:       conn,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		log:        log,
	}
	if err := p.openChannel(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// openChannel открывает канал на текущем соединении и подписывается на его закрытие.
// Закрытие соединения закрывает и канал, так что одной подписки достаточно.
func (p *Publisher) openChannel() error {
	ch, err := SetupChannel(p.conn, p.exchange, p.queues)
	if err != nil {
		return err
	}
	p.ch = ch
	// amqp пишет в канал уведомлений один раз и блокируется без буфера
	p.closed = ch.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

// reconnect восстанавливает соединение, если оно закрыто, и открывает новый канал.
// Делается одна попытка.
func (p *Publisher) reconnect() error {
	const op = "rabbitmq.reconnect"

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := Connect(p.url, 1, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		p.conn = conn
	}
	if err := p.openChannel(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Info("reconnected to broker", slog.String("op", op))
	return nil
}

// channelLost сообщает, пришло ли уведомление о закрытии канала.
func (p *Publisher) channelLost() bool {
	select {
	case err, ok := <-p.closed:
		if ok {
			p.log.Warn("broker channel closed", slog.String("op", "rabbitmq.channelLost"), slog.Any("reason", err))
		}
		return true
	default:
		return p.ch == nil
	}
}

// PublishLead публикует заявку.
func (p *Publisher) PublishLead(ctx context.Context, lead models.Lead) error {
	const op = "rabbitmq.PublishLead"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channelLost() {
		if err := p.reconnect(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	err := PublishMessage(p.ch, p.exchange, p.routingKey, lead)
	if errors.Is(err, amqp.ErrClosed) {
		// уведомление о закрытии могло ещё не дойти
		if rerr := p.reconnect(); rerr != nil {
			return fmt.Errorf("%s: %w", op, rerr)
		}
		err = PublishMessage(p.ch, p.exchange, p.routingKey, lead)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("lead published", slog.String("op", op), slog.String("assunto", lead.Assunto))
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	const op = "rabbitmq.Close"
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			p.log.Error("failed to close channel", slog.String("op", op), sl.Err(err))
		}
	}
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LogPublisher пишет заявки в лог, когда брокер не настроен.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher создает LogPublisher.
func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// PublishLead пишет заявку в лог.
func (p *LogPublisher) PublishLead(_ context.Context, lead models.Lead) error {
	p.log.Info("lead received",
		slog.String("op", "rabbitmq.LogPublisher"),
		slog.String("nome", lead.Nome),
		slog.String("email", lead.Email),
		slog.String("assunto", lead.Assunto),
	)
	return nil
}

// Close ничего не делает.
func (p *LogPublisher) Close() error { return nil }
