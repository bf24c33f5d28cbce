package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address")
	storeDriver := flag.String("store", "", "snapshot store: memory or badger")
	dataDir := flag.String("data-dir", "", "badger data directory")
	origins := flag.String("origins", "", "comma separated allowed origins")
	logLevel := flag.String("log-level", "", "trace, debug, info, warn or error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// flags win over file and environment
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *storeDriver != "" {
		cfg.Store.Driver = *storeDriver
	}
	if *dataDir != "" {
		cfg.Store.DataDir = *dataDir
	}
	if *origins != "" {
		cfg.AllowOrigins = *origins
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	log.SetLevel(logLevels[strings.ToLower(cfg.LogLevel)])

	snapshots, err := openStore(cfg.Store)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := snapshots.Close(); err != nil {
			log.Errorw("failed to close store", "error", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName: "chess-backend",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, snapshots)

	controller.RegisterRoutes(app, gameService, splitOrigins(cfg.AllowOrigins))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Addr, "store", cfg.Store.Driver)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Errorw("server stopped", "error", err)
	}
}

func openStore(cfg config.Store) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreBadger:
		return store.OpenBadger(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func splitOrigins(origins string) []string {
	var out []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
