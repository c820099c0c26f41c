// Package network is a stand-in for an external connection that must be
// opened once the bean is wired and closed when the container shuts down.
package network

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNotConnected is returned by Call before Connect or after Disconnect.
var ErrNotConnected = errors.New("network: not connected")

type Client struct {
	url string
	log *zap.Logger

	mu        sync.Mutex
	connected bool
	calls     int
}

func NewClient(url string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{url: url, log: log.Named("network")}
	c.log.Debug("constructed", zap.String("url", url))
	return c
}

func (c *Client) URL() string { return c.url }

func (c *Client) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	c.log.Info("connect", zap.String("url", c.url))
}

func (c *Client) Call(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrNotConnected
	}
	c.calls++
	c.log.Info("call", zap.String("url", c.url), zap.String("message", message))
	return nil
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.log.Info("close", zap.String("url", c.url))
}

// Init opens the connection and sends the greeting. Registered as the init hook.
func (c *Client) Init() error {
	c.Connect()
	return c.Call("init connection message")
}

// Close is registered as the destroy hook.
func (c *Client) Close() error {
	c.Disconnect()
	return nil
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Calls returns how many messages were sent.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
