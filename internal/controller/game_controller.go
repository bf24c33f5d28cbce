package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPromotionPending),
		errors.Is(err, model.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, model.ErrInvalidBoard):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body: " + err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	state, err := gc.gameService.CreateGame()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	state, err := gc.gameService.HandleMove(c.Params("gameId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req service.PromoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	state, err := gc.gameService.Promote(c.Params("gameId"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Reset(c *fiber.Ctx) error {
	state, err := gc.gameService.Reset(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// Restore replaces the live game with its stored snapshot.
func (gc *GameController) Restore(c *fiber.Ctx) error {
	state, err := gc.gameService.RestoreSnapshot(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ListSnapshots(c *fiber.Ctx) error {
	metas, err := gc.gameService.ListSnapshots(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	if metas == nil {
		metas = []store.Meta{}
	}
	return c.JSON(metas)
}

func (gc *GameController) GetSnapshot(c *fiber.Ctx) error {
	snapshot, err := gc.gameService.LoadSnapshot(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

// SaveSnapshot stores the current position of a live game.
func (gc *GameController) SaveSnapshot(c *fiber.Ctx) error {
	snapshot, err := gc.gameService.SaveSnapshot(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

func (gc *GameController) DeleteSnapshot(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteSnapshot(c.UserContext(), c.Params("gameId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) ValidateSnapshot(c *fiber.Ctx) error {
	var snapshot store.Snapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return badBody(c, err)
	}
	if err := gc.gameService.ValidateSnapshot(snapshot); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"valid": true,
	})
}
