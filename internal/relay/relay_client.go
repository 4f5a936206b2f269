package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"webstrate-analytics/internal/events"
	"webstrate-analytics/internal/models"
	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/ulid"
	"webstrate-analytics/internal/streams"
)

// Config holds the upstream platform connection parameters.
type Config struct {
	URL    string
	APIKey string
	// KeepaliveInterval must stay below the platform's 30s idle cutoff.
	KeepaliveInterval time.Duration
}

const DefaultKeepaliveInterval = 25 * time.Second

// Client maintains the WebSocket subscription to the collaboration platform
// and feeds every received activity event into the partitioned stream. A lost
// connection is re-established with exponential backoff; a rejected API key is
// terminal.
//
//go:generate mockgen -source=relay_client.go -destination=./mocks/relay_client_mock.go -package=mocks
type Client interface {
	Start(ctx context.Context)
	Stop()
}

// wireConn is the subset of the WebSocket connection the client uses.
// Abstracted so session handling is testable without a live server.
type wireConn interface {
	ReadJSON(ctx context.Context, v any) error
	WriteJSON(ctx context.Context, v any) error
	Close() error
}

type dialFunc func(ctx context.Context, url string) (wireConn, error)

type client struct {
	cfg      Config
	producer streams.PlatformEventProducer
	dial     dialFunc

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewClient(cfg Config, producer streams.PlatformEventProducer, logger loggers.Logger) Client {
	if cfg.KeepaliveInterval <= 0 {
		cfg.KeepaliveInterval = DefaultKeepaliveInterval
	}
	return &client{
		cfg:      cfg,
		producer: producer,
		dial:     dialWebsocket,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// outboundMessage covers the three platform control frames: key authorization,
// wildcard subscription and keepalive.
type outboundMessage struct {
	GA             string `json:"ga,omitempty"`
	Type           string `json:"type,omitempty"`
	Key            string `json:"key,omitempty"`
	Webstrates     string `json:"webstrates,omitempty"`
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// inboundMessage is the union of control acknowledgements and activity events.
// Acknowledgements carry only ga; activity events add webstrateId and userId.
type inboundMessage struct {
	GA          string `json:"ga"`
	WebstrateID string `json:"webstrateId"`
	UserID      string `json:"userId"`
}

func (c *client) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

func (c *client) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	c.wg.Wait()
}

func (c *client) run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // retry indefinitely

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		default:
		}

		err := c.session(ctx, bo)
		switch {
		case errors.Is(err, errStopped), ctx.Err() != nil:
			return
		case errors.Is(err, errUnauthorized):
			c.logger.Error().Msg("platform rejected the API key, giving up")
			return
		}

		wait := bo.NextBackOff()
		metricDisconnectsTotal.Inc()
		c.logger.Warn().
			Err(err).
			Dur(loggers.FieldDuration, wait).
			Msg("lost platform connection, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-time.After(wait):
		}
	}
}

// session runs one connection lifetime: dial, authorize, subscribe, then pump
// events until the connection drops or the client stops. The backoff is reset
// once the platform acknowledges the key, so a healthy session does not
// inherit a previous outage's delay.
func (c *client) session(ctx context.Context, bo *backoff.ExponentialBackOff) error {
	conn, err := c.dial(ctx, c.cfg.URL)
	if err != nil {
		return err
	}
	metricConnectsTotal.Inc()

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	// Unblock the read loop when Stop is called mid-session.
	go func() {
		select {
		case <-c.stopCh:
			cancel()
		case <-sessionCtx.Done():
		}
	}()

	if err := conn.WriteJSON(sessionCtx, outboundMessage{GA: "key", Key: c.cfg.APIKey}); err != nil {
		return err
	}

	c.startKeepalive(sessionCtx, conn, cancel)

	subscriptionID := ulid.NewULID()
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(sessionCtx, &msg); err != nil {
			select {
			case <-c.stopCh:
				return errStopped
			default:
			}
			return err
		}

		switch msg.GA {
		case "unauthorized":
			return errUnauthorized

		case "authorized":
			c.logger.Info().Msg("authorized by platform, subscribing to all webstrates")
			if err := conn.WriteJSON(sessionCtx, outboundMessage{
				GA:             "subscribeWebstrate",
				Webstrates:     "*",
				SubscriptionID: subscriptionID,
			}); err != nil {
				return err
			}
			bo.Reset()

		case "":
			// Keepalive acknowledgements and other non-event frames.

		default:
			metricEventsReceivedTotal.WithLabelValues(msg.GA).Inc()
			event := events.PlatformEvent{
				Kind:        models.EventKind(msg.GA),
				WebstrateID: msg.WebstrateID,
				UserID:      msg.UserID,
			}
			if err := c.producer.Produce(sessionCtx, event); err != nil {
				return err
			}
		}
	}
}

func (c *client) startKeepalive(ctx context.Context, conn wireConn, cancel context.CancelFunc) {
	go func() {
		ticker := time.NewTicker(c.cfg.KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := conn.WriteJSON(ctx, outboundMessage{Type: "alive"}); err != nil {
					// Let the read loop observe the dead connection.
					cancel()
					return
				}
			}
		}
	}()
}

type websocketConn struct {
	conn *websocket.Conn
}

func dialWebsocket(ctx context.Context, url string) (wireConn, error) {
	conn, _, err := websocket.Dial(ctx, url, nil) //nolint:bodyclose // closed by websocket.Conn
	if err != nil {
		return nil, err
	}
	return &websocketConn{conn: conn}, nil
}

func (c *websocketConn) ReadJSON(ctx context.Context, v any) error {
	return wsjson.Read(ctx, c.conn, v)
}

func (c *websocketConn) WriteJSON(ctx context.Context, v any) error {
	return wsjson.Write(ctx, c.conn, v)
}

func (c *websocketConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
