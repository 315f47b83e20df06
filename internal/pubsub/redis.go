// Package pubsub avisa por Redis cuando se activa un modelo nuevo, para que
// todas las réplicas de la API lo recarguen.
package pubsub

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/sadieom/BiblioMatch/internal/config"
	"github.com/sadieom/BiblioMatch/internal/logging"
)

// ModelUpdated es el mensaje publicado en el canal de modelos.
type ModelUpdated struct {
	Version     string    `json:"version"`
	Titles      int       `json:"titles"`
	PublishedAt time.Time `json:"publishedAt"`
}

type Notifier struct {
	client  *redis.Client
	channel string
}

// NewRedisClient crea el cliente y hace ping.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	l := logging.Component("redis")
	l.Info().Str("addr", cfg.RedisAddr).Msg("conectado")
	return client, nil
}

func NewNotifier(client *redis.Client, channel string) *Notifier {
	return &Notifier{client: client, channel: channel}
}

// Publish avisa que hay un modelo activo nuevo. Sin cliente no hace nada.
func (n *Notifier) Publish(ctx context.Context, msg ModelUpdated) error {
	if n == nil || n.client == nil {
		return nil
	}
	if msg.PublishedAt.IsZero() {
		msg.PublishedAt = time.Now().UTC()
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, n.channel, b).Err()
}

// Subscribe llama a handle por cada mensaje hasta que ctx se cancele.
// Los mensajes que no se pueden decodificar se loguean y se descartan.
func (n *Notifier) Subscribe(ctx context.Context, handle func(context.Context, ModelUpdated)) error {
	if n == nil || n.client == nil {
		return nil
	}
	log := logging.Component("pubsub")

	sub := n.client.Subscribe(ctx, n.channel)
	defer sub.Close()

	// espera la confirmación de la suscripción
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", n.channel, err)
	}
	log.Info().Str("channel", n.channel).Msg("suscrito")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			msg, err := Decode(m.Payload)
			if err != nil {
				log.Warn().Err(err).Str("payload", m.Payload).Msg("mensaje inválido")
				continue
			}
			handle(ctx, msg)
		}
	}
}

// Decode parsea el payload de un ModelUpdated.
func Decode(payload string) (ModelUpdated, error) {
	var msg ModelUpdated
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return ModelUpdated{}, err
	}
	if msg.Version == "" {
		return ModelUpdated{}, fmt.Errorf("missing version")
	}
	return msg, nil
}
