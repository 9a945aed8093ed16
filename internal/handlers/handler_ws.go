package handlers

import (
	"github.com/SscSPs/drycleaner_app/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// registerWebsocketRoutes exposes the dashboard event stream. Browsers pass
// the token as the access_token query parameter.
func registerWebsocketRoutes(rg *gin.RouterGroup, hub *realtime.Hub, allowedOrigins []string) {
	upgrader := realtime.NewUpgrader(allowedOrigins)
	rg.GET("/ws", serveWs(hub, upgrader))
}

// serveWs godoc
// @Summary Store event stream
// @Description Upgrades to a websocket that receives store events and notifications as JSON.
// @Tags realtime
// @Param access_token query string false "JWT when the Authorization header cannot be set"
// @Success 101
// @Security BearerAuth
// @Router /ws [get]
func serveWs(hub *realtime.Hub, upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		realtime.ServeWs(hub, upgrader, c.Writer, c.Request)
	}
}
