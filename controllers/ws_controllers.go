package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/realtime"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub          *realtime.Hub
	TicketSecret []byte
}

func NewWSController(hub *realtime.Hub, ticketSecret []byte) *WSController {
	return &WSController{Hub: hub, TicketSecret: ticketSecret}
}

// IssueTicket exchanges a verified provider token for a short-lived websocket
// ticket, since browser websocket upgrades cannot carry headers.
func (wc *WSController) IssueTicket(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	ticket, err := utils.GenerateWSTicket(wc.TicketSecret, uid, c.GetString("role"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ticket issued", gin.H{"ticket": ticket})
}

// Stream upgrades the connection and registers it with the hub. The ticket
// middleware has already set uid and role. The client is read until it
// disconnects; snapshot events arrive via hub broadcasts.
func (wc *WSController) Stream(c *gin.Context) {
	role := c.GetString("role")
	if role == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wc.Hub.Register(ws, role)
	defer wc.Hub.Unregister(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
