// Copyright (c) 2026 Cordell Calitz

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package messaging

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Client is a NATS connection scoped to KeyValue access.
type Client struct {
	logger *slog.Logger
	url    string

	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewClient creates a Client for the given NATS server URL. No connection is
// made until Connect.
func NewClient(
	logger *slog.Logger,
	url string,
) *Client {
	return &Client{
		logger: logger,
		url:    url,
	}
}

// Connect dials the server and obtains a JetStream context.
func (c *Client) Connect() error {
	conn, err := nats.Connect(c.url)
	if err != nil {
		return fmt.Errorf("connect to nats %q: %w", c.url, err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return fmt.Errorf("obtain jetstream context: %w", err)
	}

	c.conn = conn
	c.js = js
	c.logger.Debug("connected to nats", slog.String("url", c.url))

	return nil
}

// Bucket returns the named KeyValue bucket, creating it when absent.
func (c *Client) Bucket(
	name string,
) (nats.KeyValue, error) {
	kv, err := c.js.KeyValue(name)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, nats.ErrBucketNotFound) {
		return nil, fmt.Errorf("open kv bucket %q: %w", name, err)
	}

	kv, err = c.js.CreateKeyValue(&nats.KeyValueConfig{Bucket: name})
	if err != nil {
		return nil, fmt.Errorf("create kv bucket %q: %w", name, err)
	}

	return kv, nil
}

// Close releases the connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
