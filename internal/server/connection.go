package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/trainer"
)

// Connection is one learner's WebSocket session. Each connection owns its
// own trainer, so learners never share a scenario.
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	trainer   *trainer.Trainer
	shared    *drill.SharedScore
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(id string, conn *websocket.Conn, tr *trainer.Trainer, shared *drill.SharedScore, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		id:      id,
		conn:    conn,
		send:    make(chan *Message, 64),
		trainer: tr,
		shared:  shared,
		logger:  logger.WithPrefix("conn").With("session", id),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeNewScenario:
		c.handleNewScenario()

	case MessageTypeSubmitAnswers:
		var data SubmitAnswersData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse submit answers data")
			return
		}
		c.handleSubmitAnswers(data)

	case MessageTypeGetScore:
		c.handleGetScore()

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

func (c *Connection) reply(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors
}

func (c *Connection) handleNewScenario() {
	s, err := c.trainer.Advance()
	if err != nil {
		if errors.Is(err, drill.ErrInvalidTransition) {
			c.sendError("answers_pending", "Submit answers for the current scenario first")
			return
		}
		c.sendError("scenario_failed", err.Error())
		return
	}
	c.reply(MessageTypeScenario, scenarioFor(s))
}

func (c *Connection) handleSubmitAnswers(data SubmitAnswersData) {
	raw := make(map[drill.Field]string, len(data.Answers))
	for name, text := range data.Answers {
		f, err := drill.ParseField(name)
		if err != nil {
			c.sendError("unknown_field", err.Error())
			return
		}
		raw[f] = text
	}

	s, err := c.trainer.Check(raw)
	if err != nil {
		if errors.Is(err, drill.ErrInvalidTransition) {
			c.sendError("no_open_scenario", "There is no unchecked scenario to grade")
			return
		}
		c.sendError("check_failed", err.Error())
		return
	}
	c.reply(MessageTypeGradeResult, gradeResultFor(s))
}

func (c *Connection) handleGetScore() {
	c.reply(MessageTypeScore, ScoreData{
		Session: c.trainer.Session().Score,
		Global:  c.shared.Snapshot(),
	})
}
