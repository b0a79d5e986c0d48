package controllers

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "gear-system/pkg/errors"
	"gear-system/pkg/service"
	"gear-system/pkg/utils"
	"gear-system/pkg/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front; the socket itself only
	// trusts the token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebsocketController struct {
	hub    *websocket.Hub
	jwtSvc service.JWTService
	logger *zap.Logger
}

func NewWebsocketController(hub *websocket.Hub, jwtSvc service.JWTService, logger *zap.Logger) *WebsocketController {
	return &WebsocketController{hub: hub, jwtSvc: jwtSvc, logger: logger}
}

// Serve upgrades the connection. Browsers cannot set an Authorization header
// on a websocket handshake, so the access token rides in ?token=.
func (c *WebsocketController) Serve(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrEmptyAuthHeader, c.logger)
	}
	claims, err := c.jwtSvc.ValidateToken(token)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if claims.IsRefreshToken {
		return utils.ErrorResponse(ctx, apperrors.ErrTokenIsNotAccess, c.logger)
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Warn("ws upgrade failed", zap.Error(err))
		return err
	}

	client := websocket.NewClient(c.hub, conn, claims.UserID)
	c.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
	return nil
}
