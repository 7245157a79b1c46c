package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/xtding233/matchup-backend/internal/constants"
	"github.com/xtding233/matchup-backend/internal/logging"
	"github.com/xtding233/matchup-backend/internal/matchup"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream serves matchups over a websocket. Each text frame is a Request and
// gets exactly one reply: a Result or {"error": "..."}.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn("websocket upgrade failed", err, logging.Fields{constants.LogFieldRemote: c.ClientIP()})
		return
	}
	defer conn.Close()

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("websocket read failed", err, logging.Fields{constants.LogFieldRemote: c.ClientIP()})
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		if err := conn.WriteJSON(h.streamReply(msg)); err != nil {
			logging.Warn("websocket write failed", err, logging.Fields{constants.LogFieldRemote: c.ClientIP()})
			return
		}
	}
}

func (h *Handler) streamReply(msg []byte) interface{} {
	var req matchup.Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return gin.H{constants.JSONKeyError: constants.ErrInvalidRequest}
	}
	res, err := h.svc.Calculate(req)
	if err != nil {
		return gin.H{constants.JSONKeyError: err.Error()}
	}
	return res
}
