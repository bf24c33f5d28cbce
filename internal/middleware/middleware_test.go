package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRequireGameID(t *testing.T) {
	app := fiber.New()
	app.Get("/games/:gameId", RequireGameID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Params("gameId"))
	})

	tests := []struct {
		name string
		id   string
		want int
	}{
		{name: "uuid", id: "0b6f4c1e-3e0e-4d2b-8f51-6a1f0a7c2d90", want: fiber.StatusOK},
		{name: "plain word", id: "lobby", want: fiber.StatusBadRequest},
		{name: "truncated uuid", id: "0b6f4c1e-3e0e", want: fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/games/"+tt.id, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/ws", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("plain request: expected 426, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("upgrade request: expected the next handler, got %d", resp.StatusCode)
	}
}
