package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	snapshots := store.NewMemoryStore()
	t.Cleanup(func() { _ = snapshots.Close() })

	app := fiber.New()
	RegisterRoutes(app, service.NewGameService(service.NewGameManager(), snapshots), nil)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, out
}

func decodeState(t *testing.T, body []byte) model.GameState {
	t.Helper()
	var state model.GameState
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode state %s: %v", body, err)
	}
	return state
}

func createGame(t *testing.T, app *fiber.App) model.GameState {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/games", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("create: status %d body %s", status, body)
	}
	return decodeState(t, body)
}

type moveBody struct {
	From    *model.Position `json:"from,omitempty"`
	PieceID *int            `json:"pieceId,omitempty"`
	To      model.Position  `json:"to"`
}

func TestCreateAndGetGame(t *testing.T) {
	app := newTestApp(t)
	state := createGame(t, app)
	if len(state.Pieces) != 32 || state.CurrentTeam != model.TeamOur {
		t.Fatalf("unexpected initial state: %d pieces, %s to move", len(state.Pieces), state.CurrentTeam)
	}

	status, body := do(t, app, http.MethodGet, "/api/games/"+state.ID, nil)
	if status != fiber.StatusOK {
		t.Fatalf("get: status %d body %s", status, body)
	}
	if got := decodeState(t, body); got.ID != state.ID {
		t.Fatalf("expected game %s, got %s", state.ID, got.ID)
	}
}

func TestGameRouteStatuses(t *testing.T) {
	app := newTestApp(t)
	state := createGame(t, app)
	unknown := "6f1c2d1e-8f7a-4c59-9a53-2f3f1a7f9b10"

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{name: "malformed id", method: http.MethodGet, path: "/api/games/not-a-uuid", want: fiber.StatusBadRequest},
		{name: "unknown game", method: http.MethodGet, path: "/api/games/" + unknown, want: fiber.StatusNotFound},
		{name: "move on unknown game", method: http.MethodPost, path: "/api/games/" + unknown + "/move",
			body: moveBody{From: &model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 3}}, want: fiber.StatusNotFound},
		{name: "missing body", method: http.MethodPost, path: "/api/games/" + state.ID + "/move", want: fiber.StatusBadRequest},
		{name: "no source square", method: http.MethodPost, path: "/api/games/" + state.ID + "/move",
			body: moveBody{To: model.Position{X: 4, Y: 3}}, want: fiber.StatusBadRequest},
		{name: "opponent to move", method: http.MethodPost, path: "/api/games/" + state.ID + "/move",
			body: moveBody{From: &model.Position{X: 4, Y: 6}, To: model.Position{X: 4, Y: 4}}, want: fiber.StatusConflict},
		{name: "illegal", method: http.MethodPost, path: "/api/games/" + state.ID + "/move",
			body: moveBody{From: &model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 5}}, want: fiber.StatusUnprocessableEntity},
		{name: "promote without request", method: http.MethodPost, path: "/api/games/" + state.ID + "/promote",
			body: service.PromoteRequest{Type: model.Queen}, want: fiber.StatusConflict},
		{name: "restore without snapshot", method: http.MethodPost, path: "/api/games/" + state.ID + "/restore", want: fiber.StatusNotFound},
		{name: "websocket without upgrade", method: http.MethodGet, path: "/ws/game/" + state.ID, want: fiber.StatusUpgradeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			if status != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, status, body)
			}
		})
	}
}

func TestMoveThenReset(t *testing.T) {
	app := newTestApp(t)
	state := createGame(t, app)

	status, body := do(t, app, http.MethodPost, "/api/games/"+state.ID+"/move",
		moveBody{From: &model.Position{X: 4, Y: 1}, To: model.Position{X: 4, Y: 3}})
	if status != fiber.StatusOK {
		t.Fatalf("move: status %d body %s", status, body)
	}
	moved := decodeState(t, body)
	if moved.TotalTurns != 1 || moved.CurrentTeam != model.TeamOpponent {
		t.Fatalf("unexpected state after e4: turns=%d team=%s", moved.TotalTurns, moved.CurrentTeam)
	}

	knight, ok := moved.Pieces.PieceAt(model.Position{X: 6, Y: 7})
	if !ok {
		t.Fatalf("no knight on g8")
	}
	status, body = do(t, app, http.MethodPost, "/api/games/"+state.ID+"/move",
		moveBody{PieceID: &knight.ID, To: model.Position{X: 5, Y: 5}})
	if status != fiber.StatusOK {
		t.Fatalf("move by id: status %d body %s", status, body)
	}
	if got := decodeState(t, body); got.History[1].Notation != "Nf6" {
		t.Fatalf("expected Nf6, got %q", got.History[1].Notation)
	}

	status, body = do(t, app, http.MethodPost, "/api/games/"+state.ID+"/reset", nil)
	if status != fiber.StatusOK {
		t.Fatalf("reset: status %d body %s", status, body)
	}
	if got := decodeState(t, body); got.TotalTurns != 0 || len(got.History) != 0 {
		t.Fatalf("reset should clear the game, got turns=%d", got.TotalTurns)
	}
}

func TestSnapshotRoutes(t *testing.T) {
	app := newTestApp(t)
	state := createGame(t, app)
	snapshotPath := "/api/snapshots/" + state.ID

	if status, body := do(t, app, http.MethodGet, snapshotPath, nil); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 before save, got %d (%s)", status, body)
	}

	do(t, app, http.MethodPost, "/api/games/"+state.ID+"/move",
		moveBody{From: &model.Position{X: 3, Y: 1}, To: model.Position{X: 3, Y: 3}})

	status, body := do(t, app, http.MethodPut, snapshotPath, nil)
	if status != fiber.StatusOK {
		t.Fatalf("save: status %d body %s", status, body)
	}
	var saved store.Snapshot
	if err := json.Unmarshal(body, &saved); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if saved.GameID != state.ID || saved.TotalTurns != 1 {
		t.Fatalf("unexpected snapshot %+v", saved)
	}

	status, body = do(t, app, http.MethodGet, "/api/snapshots", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list: status %d body %s", status, body)
	}
	var metas []store.Meta
	if err := json.Unmarshal(body, &metas); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(metas) != 1 || metas[0].Pieces != 32 {
		t.Fatalf("unexpected listing %+v", metas)
	}

	do(t, app, http.MethodPost, "/api/games/"+state.ID+"/reset", nil)
	status, body = do(t, app, http.MethodPost, "/api/games/"+state.ID+"/restore", nil)
	if status != fiber.StatusOK {
		t.Fatalf("restore: status %d body %s", status, body)
	}
	if got := decodeState(t, body); got.TotalTurns != 1 {
		t.Fatalf("restore should bring back turn 1, got %d", got.TotalTurns)
	}

	if status, _ := do(t, app, http.MethodDelete, snapshotPath, nil); status != fiber.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", status)
	}
	if status, _ := do(t, app, http.MethodDelete, snapshotPath, nil); status != fiber.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestValidateSnapshotRoute(t *testing.T) {
	app := newTestApp(t)

	valid := store.Snapshot{GameID: "x", Pieces: model.CreateBoard(model.NewIDGenerator(1))}
	if status, body := do(t, app, http.MethodPost, "/api/snapshots/validate", valid); status != fiber.StatusOK {
		t.Fatalf("valid snapshot: status %d body %s", status, body)
	}

	overlapping := store.Snapshot{GameID: "x", Pieces: model.Board{
		{ID: 1, Type: model.Rook, Team: model.TeamOur, Position: model.Position{X: 0, Y: 0}},
		{ID: 2, Type: model.Rook, Team: model.TeamOur, Position: model.Position{X: 0, Y: 0}},
	}}
	if status, body := do(t, app, http.MethodPost, "/api/snapshots/validate", overlapping); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("overlapping pieces: expected 422, got %d (%s)", status, body)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	if status, body := do(t, app, http.MethodGet, "/healthz", nil); status != fiber.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response %d %q", status, body)
	}
}
