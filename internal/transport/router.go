package transport

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/config"
	"github.com/hersh/gopong/internal/protocol"
)

// NewRouter wires the websocket endpoint, the JSON API and the static
// browser client. ctx bounds every connection's lifetime.
func NewRouter(ctx context.Context, cfg *config.Config, dispatch Dispatcher, hub *Hub) *gin.Engine {
	gin.SetMode(cfg.Mode)

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	ws := &wsHandler{ctx: ctx, cfg: cfg, hub: hub, dispatch: dispatch}
	r.GET("/ws", ws.serve)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.GET("/rooms", func(c *gin.Context) {
		rooms, err := dispatch.Rooms(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("module", "transport.http").Msg("list rooms")
			c.JSON(http.StatusServiceUnavailable, protocol.ErrorResponse{Error: "game loop unavailable"})
			return
		}
		c.JSON(http.StatusOK, protocol.ListRoomsResponse{Rooms: rooms})
	})

	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticPath))))

	log.Info().Str("module", "transport.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
