package controller

import (
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API and the live game channel on app.
// origins restricts which browser origins may open the websocket.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, origins []string) {
	gameController := NewGameController(gameService)
	wsController := NewWebSocketController(gameService)
	gameID := middleware.RequireGameID()

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	games := api.Group("/games")
	games.Post("/", gameController.CreateGame)
	games.Get("/:gameId", gameID, gameController.GetGameState)
	games.Post("/:gameId/move", gameID, gameController.Move)
	games.Post("/:gameId/promote", gameID, gameController.Promote)
	games.Post("/:gameId/reset", gameID, gameController.Reset)
	games.Post("/:gameId/restore", gameID, gameController.Restore)

	snapshots := api.Group("/snapshots")
	snapshots.Get("/", gameController.ListSnapshots)
	snapshots.Post("/validate", gameController.ValidateSnapshot)
	snapshots.Get("/:gameId", gameID, gameController.GetSnapshot)
	snapshots.Put("/:gameId", gameID, gameController.SaveSnapshot)
	snapshots.Delete("/:gameId", gameID, gameController.DeleteSnapshot)

	app.Get("/ws/game/:gameId", gameID, middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))
}
