package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sceneflow/pkg/domain"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 250 // milliseconds

	// inputQoS is at-least-once: a press may be repeated, never lost.
	inputQoS = 1
)

var (
	ErrConnectionFailed = errors.New("mqtt connection failed")
	ErrSubscribeFailed  = errors.New("mqtt subscribe failed")
	ErrPublishFailed    = errors.New("mqtt publish failed")
)

// Config describes the broker connection.
type Config struct {
	Broker      string // e.g. tcp://localhost:1883
	ClientID    string
	TopicPrefix string
	Username    string
	Password    string
}

// Client is a connected MQTT session bound to one installation.
// It implements ports.StatusPublisher and owns an Input fed by the broker.
type Client struct {
	cfg    Config
	topics Topics
	client pahomqtt.Client
	input  *Input
	logger *slog.Logger

	mu        sync.Mutex
	connected bool
}

// buildClientOptions creates paho options for cfg.
//
// The session is clean and reconnects automatically. The broker publishes a
// retained "offline" on the status topic if the host disappears.
func buildClientOptions(cfg Config) *pahomqtt.ClientOptions {
	topics := Topics{Prefix: cfg.TopicPrefix}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetWill(topics.Status(), "offline", 1, true)
	return opts
}

// Connect opens the session and subscribes to the input topics.
// Subscriptions are restored on every reconnect.
func Connect(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Client{
		cfg:    cfg,
		topics: Topics{Prefix: cfg.TopicPrefix},
		input:  NewInput(cfg.TopicPrefix),
		logger: logger,
	}

	opts := buildClientOptions(cfg)
	opts.SetOnConnectHandler(func(client pahomqtt.Client) {
		c.setConnected(true)
		c.subscribe(client)
		client.Publish(c.topics.Status(), 1, true, "online")
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.setConnected(false)
		c.logger.Warn("mqtt connection lost", "err", err)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	c.setConnected(true)
	return c, nil
}

func (c *Client) subscribe(client pahomqtt.Client) {
	token := client.Subscribe(c.topics.AllInputs(), inputQoS, c.wrapHandler(c.input.Handle))
	if !token.WaitTimeout(defaultPublishTimeout) {
		c.logger.Error("mqtt subscribe timed out", "topic", c.topics.AllInputs())
		return
	}
	if err := token.Error(); err != nil {
		c.logger.Error("mqtt subscribe failed", "topic", c.topics.AllInputs(), "err", fmt.Errorf("%w: %w", ErrSubscribeFailed, err))
	}
}

// wrapHandler adapts a topic/payload handler with panic recovery and logging.
func (c *Client) wrapHandler(handler func(topic string, payload []byte) error) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error("mqtt handler panic recovered", "topic", msg.Topic(), "panic", r)
			}
		}()

		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			c.logger.Warn("mqtt message ignored", "topic", msg.Topic(), "err", err)
		}
	}
}

// Input returns the button source fed by the broker.
func (c *Client) Input() *Input {
	return c.input
}

// Publish implements ports.StatusPublisher with a retained JSON snapshot.
func (c *Client) Publish(ctx context.Context, s domain.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	token := c.client.Publish(c.topics.Scene(), 1, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(defaultPublishTimeout):
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// IsConnected reports the connection state as seen by the callbacks.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = v
}

// Close publishes a graceful "offline" and disconnects.
func (c *Client) Close() {
	if c.client.IsConnected() {
		c.client.Publish(c.topics.Status(), 1, true, "offline").WaitTimeout(defaultPublishTimeout)
	}
	c.client.Disconnect(defaultDisconnectQuiesce)
	c.setConnected(false)
}
