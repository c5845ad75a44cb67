package stream

import (
	"time"

	"github.com/nats-io/nats.go"
)

// Connect dials the NATS server, reconnecting forever
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(
		url,
		nats.Name("ifc-sim"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}
