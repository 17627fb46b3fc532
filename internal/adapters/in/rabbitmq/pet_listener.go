package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PetListener consumes pet lifecycle events from the shelter service and
// invalidates the pet cache so registry answers never go stale.
type PetListener struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	petCache out.PetCachePort
	cfg      *config.Config
	logger   out.LoggerPort
}

type PetEvent struct {
	PetID int64  `json:"petId"`
	Event string `json:"event"` // created, updated, deleted, archived
}

func NewPetListener(petCache out.PetCachePort, cfg *config.Config, logger out.LoggerPort) (*PetListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &PetListener{
		conn:     conn,
		channel:  channel,
		petCache: petCache,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

func (l *PetListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("rabbitmq.channel.closed", out.LogFields{})
					return
				}
				l.handleMessage(ctx, msg)
			}
		}
	}()

	l.logger.Info("rabbitmq.pet_events.started", out.LogFields{
		"queue": queue.Name,
	})
	return nil
}

func (l *PetListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *PetListener) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var event PetEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		l.logger.Warn("rabbitmq.pet_events.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return
	}

	// The cache switch is independent of the listener switch; without a
	// cache there is nothing to invalidate. Any lifecycle change can affect
	// both the per-pet answer and the full id listing, so drop both.
	if l.petCache != nil {
		l.petCache.InvalidatePet(ctx, event.PetID)
		l.petCache.InvalidateAll(ctx)
	}

	l.logger.Debug("rabbitmq.pet_events.handled", out.LogFields{
		"petId": event.PetID,
		"event": event.Event,
	})
}
