package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/utils"
)

type SessionController struct {
	Registry *cart.Registry
}

func NewSessionController(registry *cart.Registry) *SessionController {
	return &SessionController{Registry: registry}
}

// CreateSession starts an anonymous shopping session.
func (sc *SessionController) CreateSession(c *gin.Context) {
	sessionID := uuid.NewString()
	token, expires, err := utils.GenerateSessionToken(sessionID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Session created", gin.H{
		"session_id": sessionID,
		"token":      token,
		"expires_at": expires,
	})
}

// EndSession is the logout path: the cart is emptied, its slot deleted and
// the token stops working.
func (sc *SessionController) EndSession(c *gin.Context) {
	sessionID := middlewares.SessionID(c)
	sc.Registry.Reset(c.Request.Context(), sessionID)

	until := time.Now().Add(utils.SessionTTL)
	if exp, ok := c.Get(middlewares.ContextTokenExp); ok {
		until = exp.(time.Time)
	}
	utils.RevokeSession(sessionID, until)

	utils.RespondJSON(c, http.StatusOK, "Session ended", nil)
}
