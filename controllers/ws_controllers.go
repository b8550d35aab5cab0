package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type SocketController struct {
	Registry *cart.Registry
	Hub      *notify.Hub
}

func NewSocketController(registry *cart.Registry, hub *notify.Hub) *SocketController {
	return &SocketController{Registry: registry, Hub: hub}
}

// CartSocket streams cart_update and order_placed events for the session.
// The current cart is sent right after the upgrade.
func (sc *SocketController) CartSocket(c *gin.Context) {
	sessionID := middlewares.SessionID(c)
	p := sc.Registry.Get(c.Request.Context(), sessionID)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sc.Hub.Register(ws, sessionID)
	sc.Hub.BroadcastCart(sessionID, p.Snapshot())

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	sc.Hub.Unregister(ws)
}
