package controller

import (
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Register mounts the REST and WebSocket routes on app.
func Register(app *fiber.App, gameController *GameController, wsController *WebSocketController, wsBufferSize int) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Use("/ws", middleware.EnsureClientID(), middleware.WebSocketUpgrade())
	app.Get("/ws/game/:gameId", websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  wsBufferSize,
		WriteBufferSize: wsBufferSize,
	}))

	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Put("/:gameId/promotion", gameController.SetPromotion)
}
