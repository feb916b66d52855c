package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-server/internal/tictactoe"
)

const (
	actionNew     = "game:new"
	actionJoin    = "game:join"
	actionMove    = "game:move"
	actionRestart = "game:restart"
	actionCell    = "game:cell"
	actionLeave   = "game:leave"
	actionError   = "error"
)

type uGame interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeMove(ctx context.Context, id string, row, col int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	QueryCell(ctx context.Context, id string, row, col int) (tictactoe.Mark, error)
}

type handlerFunc func(ctx context.Context, c *client, payload *RequestPayload) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	subscribersMutex sync.RWMutex
	subscribers      map[string]map[*client]struct{}

	// broadcastMutex orders updates, versions holds the last version sent per game.
	broadcastMutex sync.Mutex
	versions       map[string]int64
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		subscribers: make(map[string]map[*client]struct{}),
		versions:    make(map[string]int64),
	}

	server.handlers = map[string]handlerFunc{
		actionNew:     server.handleNewGame,
		actionJoin:    server.handleJoinGame,
		actionMove:    server.handleMove,
		actionRestart: server.handleRestart,
		actionCell:    server.handleCell,
		actionLeave:   server.handleLeave,
	}

	return server
}

// ServeHTTP - upgrades the connection to WebSocket and serves it until the client leaves.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{conn: conn}
	defer func() {
		that.unsubscribeAll(c)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	go that.keepAlive(ctx, c)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
				log.Warn("failed to unmarshal message", "error", err)
				_ = c.send(actionError, ResponsePayload{Error: "malformed message"})
				continue
			}

			return err
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			_ = c.send(message.Action, ResponsePayload{Error: "unknown action"})
			continue
		}

		payload, err := decodePayload(&message)
		if err != nil {
			_ = c.send(message.Action, ResponsePayload{Error: err.Error()})
			continue
		}

		if err = handler(ctx, c, payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) keepAlive(ctx context.Context, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

func (that *Server) subscribe(gameID string, c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	clients, ok := that.subscribers[gameID]
	if !ok {
		clients = make(map[*client]struct{})
		that.subscribers[gameID] = clients
	}
	clients[c] = struct{}{}
}

func (that *Server) unsubscribe(gameID string, c *client) {
	that.subscribersMutex.Lock()
	delete(that.subscribers[gameID], c)
	empty := len(that.subscribers[gameID]) == 0
	if empty {
		delete(that.subscribers, gameID)
	}
	that.subscribersMutex.Unlock()

	if empty {
		that.forgetVersion(gameID)
	}
}

func (that *Server) unsubscribeAll(c *client) {
	var emptied []string

	that.subscribersMutex.Lock()
	for gameID, clients := range that.subscribers {
		delete(clients, c)
		if len(clients) == 0 {
			delete(that.subscribers, gameID)
			emptied = append(emptied, gameID)
		}
	}
	that.subscribersMutex.Unlock()

	for _, gameID := range emptied {
		that.forgetVersion(gameID)
	}
}

// broadcast - sends the game to every connection watching it.
// An update older than one already sent for the same game is dropped.
func (that *Server) broadcast(action string, game *entity.Game) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	that.broadcastMutex.Lock()
	defer that.broadcastMutex.Unlock()

	if last, ok := that.versions[game.ID]; ok && game.Version <= last {
		log.Debug("stale update dropped", "version", game.Version, "last", last)
		return
	}
	that.versions[game.ID] = game.Version

	that.subscribersMutex.RLock()
	clients := make([]*client, 0, len(that.subscribers[game.ID]))
	for c := range that.subscribers[game.ID] {
		clients = append(clients, c)
	}
	that.subscribersMutex.RUnlock()

	for _, c := range clients {
		if err := c.send(action, ResponsePayload{Game: game}); err != nil {
			log.Warn("failed to send game update", "error", err)
		}
	}
}

// forgetVersion - called once nobody watches the game anymore.
func (that *Server) forgetVersion(gameID string) {
	that.broadcastMutex.Lock()
	defer that.broadcastMutex.Unlock()

	delete(that.versions, gameID)
}
