package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/godisk/internal/remote"
)

const (
	batchTimeout = 5 * time.Minute
	maxMessage   = 4 << 20
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Message is a client request
type Message struct {
	Type   string `json:"type"`
	Script string `json:"script,omitempty"`
	Output string `json:"output,omitempty"`
}

// Handler manages WebSocket connections
type Handler struct {
	service *explorer.Service
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(service *explorer.Service) *Handler {
	return &Handler{
		service: service,
		logger:  logging.NewNop(),
	}
}

// WithLogger sets the handler logger
func (h *Handler) WithLogger(logger *logging.Logger) *Handler {
	h.logger = logger.Named("ws")
	return h
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessage)

	connID := uuid.NewString()
	log := h.logger.With(zap.String("conn_id", connID))
	log.Debug("WebSocket connected")

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	reqCtx := c.Request.Context()

	h.send(conn, "system", map[string]interface{}{
		"type":          "system",
		"message":       "Connected to godisk console",
		"connection_id": connID,
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("WebSocket read error", zap.Error(err))
			}
			break
		}
		h.record("in", msg.Type)

		switch msg.Type {
		case "execute":
			h.handleExecute(reqCtx, conn, msg)
		case "reconcile":
			h.handleReconcile(reqCtx, conn, msg)
		case "snapshot":
			h.sendModel(conn, "", h.service.Snapshot(), nil)
		case "ping":
			h.send(conn, "pong", map[string]interface{}{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type", nil)
		}
	}
}

func (h *Handler) handleExecute(reqCtx context.Context, conn *websocket.Conn, msg Message) {
	ctx, cancel := context.WithTimeout(reqCtx, batchTimeout)
	defer cancel()

	res, err := h.service.Execute(ctx, msg.Script, func(step remote.Step) {
		h.send(conn, "line", map[string]interface{}{
			"type":    "line",
			"line":    step.Line,
			"command": step.Command,
			"output":  step.Output,
		})
	})
	if err != nil {
		h.sendError(conn, err.Error(), err)
		return
	}
	h.sendModel(conn, res.BatchID.String(), res.Model, &res.Report)
}

func (h *Handler) handleReconcile(reqCtx context.Context, conn *websocket.Conn, msg Message) {
	res, err := h.service.Apply(reqCtx, msg.Output)
	if err != nil {
		h.sendError(conn, err.Error(), err)
		return
	}
	h.sendModel(conn, res.BatchID.String(), res.Model, &res.Report)
}

func (h *Handler) sendModel(conn *websocket.Conn, batchID string, model explorer.Snapshot, report *explorer.Report) error {
	data := map[string]interface{}{
		"type":      "model",
		"model":     model,
		"timestamp": time.Now().Unix(),
	}
	if batchID != "" {
		data["batch_id"] = batchID
	}
	if report != nil {
		data["report"] = report
	}
	return h.send(conn, "model", data)
}

func (h *Handler) send(conn *websocket.Conn, msgType string, data interface{}) error {
	h.record("out", msgType)
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string, cause error) error {
	data := map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	}

	var cmdErr *remote.CommandError
	switch {
	case errors.Is(cause, explorer.ErrBusy):
		data["code"] = "busy"
	case errors.As(cause, &cmdErr):
		data["code"] = "remote"
		data["line"] = cmdErr.Line
		data["command"] = cmdErr.Command
	}
	return h.send(conn, "error", data)
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
