package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"golang.org/x/time/rate"
)

var (
	ErrNotConnected = errors.New("not connected")
	ErrQueueFull    = errors.New("outbound queue full")
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the game server and implements
// Channel. All shared fields are protected by mu (router callbacks run on
// necs goroutines). Outbound updates go through a bounded queue drained by a
// writer goroutine, so SendMovement never blocks the frame loop.
type Client struct {
	mu sync.RWMutex

	state       ClientState
	lastError   error
	characterID string
	serverName  string
	conn        *websocket.Conn

	address    string
	version    string
	playerName string

	outbound chan messages.MovementUpdate
	down     chan struct{} // signalled on disconnect
	limiter  *rate.Limiter

	connectH    listeners[func()]
	disconnectH listeners[func(error)]
	updateH     listeners[func(messages.CharactersUpdate)]

	registerOnce sync.Once
}

var _ Channel = (*Client)(nil)

func NewClient(cfg config.NetConfig) *Client {
	size := cfg.OutboundQueue
	if size < 1 {
		size = 1
	}
	return &Client{
		state:      StateDisconnected,
		address:    cfg.ServerAddr,
		version:    cfg.Version,
		playerName: cfg.PlayerName,
		outbound:   make(chan messages.MovementUpdate, size),
		down:       make(chan struct{}, 1),
		limiter:    rate.NewLimiter(rate.Every(cfg.ReconnectInterval), 1),
	}
}

// Run dials the server and keeps re-dialing after each disconnect, no more
// often than the reconnect interval allows. It returns when ctx is done.
func (c *Client) Run(ctx context.Context) error {
	c.registerOnce.Do(c.registerHandlers)

	go c.writeLoop(ctx)

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return ctx.Err()
		}

		select { // drop a stale disconnect signal
		case <-c.down:
		default:
		}

		c.setState(StateConnecting)
		err := c.dial(ctx)
		if ctx.Err() != nil {
			c.closeConn()
			return ctx.Err()
		}
		if err != nil {
			log.Printf("[client] %v", err)
			c.setError(err)
		}
	}
}

func (c *Client) dial(ctx context.Context) error {
	stop := context.AfterFunc(ctx, c.closeConn)
	defer stop()

	transport := transports.NewWsClientTransport("ws://" + c.address)
	err := transport.Start(func(conn *websocket.Conn) {
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
	})
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	select {
	case <-c.down:
	case <-ctx.Done():
	}
	return nil
}

func (c *Client) registerHandlers() {
	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.setState(StateConnected)

		if err := c.write(messages.JoinRequest{
			Version:    c.version,
			PlayerName: c.playerName,
		}); err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: character=%s server=%s", msg.CharacterID, msg.ServerName)
		c.mu.Lock()
		c.characterID = msg.CharacterID
		c.serverName = msg.ServerName
		c.state = StateJoinedGame
		c.mu.Unlock()

		for _, fn := range c.connectH.snapshot() {
			fn()
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
		c.closeConn()
	})

	router.On(func(_ *router.NetworkClient, msg messages.CharactersUpdate) {
		for _, fn := range c.updateH.snapshot() {
			fn(msg)
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()

		select {
		case c.down <- struct{}{}:
		default:
		}
		for _, fn := range c.disconnectH.snapshot() {
			fn(err)
		}
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})
}

// writeLoop sends queued updates in order until ctx is done.
func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-c.outbound:
			if err := c.write(u); err != nil {
				log.Printf("[client] send movement: %v", err)
			}
		}
	}
}

func (c *Client) write(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// SendMovement queues u for the writer goroutine. When the queue is full the
// oldest pending update is dropped, since a newer state supersedes it.
func (c *Client) SendMovement(u messages.MovementUpdate) error {
	if !c.Connected() {
		return ErrNotConnected
	}
	for range 2 {
		select {
		case c.outbound <- u:
			return nil
		default:
		}
		select {
		case <-c.outbound:
		default:
		}
	}
	return ErrQueueFull
}

func (c *Client) OnConnect(fn func()) func() { return c.connectH.add(fn) }

func (c *Client) OnDisconnect(fn func(error)) func() { return c.disconnectH.add(fn) }

func (c *Client) OnCharactersUpdate(fn func(messages.CharactersUpdate)) func() {
	return c.updateH.add(fn)
}

// Disconnect closes the current connection and clears every router handler.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) closeConn() {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn != nil {
		_ = conn.CloseNow()
	}
}

func (c *Client) Connected() bool {
	return c.State() == StateJoinedGame
}

func (c *Client) LocalID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.characterID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) setState(s ClientState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
