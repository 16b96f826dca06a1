package announce

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS is a Publisher backed by a NATS connection.
type NATS struct {
	conn *nats.Conn
}

// ConnectNATS dials the server, retrying in the background when it is not up yet.
func ConnectNATS(url string, logger *slog.Logger) (*NATS, error) {
	opts := []nats.Option{
		nats.Name("svxdash"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &NATS{conn: nc}, nil
}

func (n *NATS) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.conn.Publish(subject, payload)
}

// Close flushes pending messages and closes the connection.
func (n *NATS) Close() {
	_ = n.conn.Drain()
}
