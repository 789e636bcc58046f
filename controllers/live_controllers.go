package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/utils"
)

type LiveController struct {
	Hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewLiveController accepts websocket handshakes from allowedOrigins. A "*"
// entry allows any origin; requests without an Origin header are always allowed.
func NewLiveController(hub *live.Hub, allowedOrigins []string) *LiveController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &LiveController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Serve -> GET /ws
func (lc *LiveController) Serve(c *gin.Context) {
	ws, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed from %s: %v", c.ClientIP(), err)
		return
	}

	lc.Hub.Register(ws)
	utils.InfoLogger.Printf("Live client connected from %s", c.ClientIP())

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	lc.Hub.Unregister(ws)
	utils.InfoLogger.Printf("Live client disconnected from %s", c.ClientIP())
}
