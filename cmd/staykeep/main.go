package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staykeep/staykeep/internal/config"
	"github.com/staykeep/staykeep/internal/database"
	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/handler"
	"github.com/staykeep/staykeep/internal/logger"
	"github.com/staykeep/staykeep/internal/notify"
	"github.com/staykeep/staykeep/internal/repository"
	"github.com/staykeep/staykeep/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "staykeep",
		Usage: "Hospitality task and space lifecycle engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "system-actor",
						Usage:   "User ID recorded on audit entries when no human actor is known",
						EnvVars: []string{"SYSTEM_ACTOR_ID"},
					},
					&cli.StringFlag{
						Name:    "telegram-token",
						Usage:   "Telegram bot token for assignment notifications (omit to disable)",
						EnvVars: []string{"TELEGRAM_BOT_TOKEN"},
					},
					&cli.IntFlag{
						Name:    "sla-p1-minutes",
						Value:   config.DefaultP1Minutes,
						Usage:   "Response window in minutes for urgent (P1) tasks",
						EnvVars: []string{"SLA_P1_MINUTES"},
					},
					&cli.IntFlag{
						Name:    "sla-p2-minutes",
						Value:   config.DefaultP2Minutes,
						Usage:   "Response window in minutes for high (P2) tasks",
						EnvVars: []string{"SLA_P2_MINUTES"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "Populate the database with demo spaces, users and equipment",
				Action: runSeed,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if token := c.String("telegram-token"); token != "" {
		notifier = notify.NewTelegramNotifier(token)
		slog.Info("telegram notifications enabled")
	}

	h := handler.New(db.Pool(), notifier, handler.Config{
		SystemActorID: c.String("system-actor"),
		SLAThresholds: service.SLAThresholds{
			P1Minutes: c.Int("sla-p1-minutes"),
			P2Minutes: c.Int("sla-p2-minutes"),
		},
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runSeed(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	spaceRepo := repository.NewSpaceRepository(db.Pool())
	userRepo := repository.NewUserRepository(db.Pool())
	equipmentRepo := repository.NewEquipmentRepository(db.Pool())

	spaces := []*domain.Space{
		{Name: "Room 101", Type: domain.SpaceTypeRoom, Status: domain.SpaceStatusReady},
		{Name: "Room 102", Type: domain.SpaceTypeRoom, Status: domain.SpaceStatusDirty},
		{Name: "Room 201", Type: domain.SpaceTypeRoom, Status: domain.SpaceStatusOccupied},
		{Name: "Lobby", Type: domain.SpaceTypePublicArea, Status: domain.SpaceStatusReady},
		{Name: "Pool Deck", Type: domain.SpaceTypeOutdoor, Status: domain.SpaceStatusReady},
		{Name: "Spa", Type: domain.SpaceTypeWellness, Status: domain.SpaceStatusInspected},
		{Name: "Laundry", Type: domain.SpaceTypeBackOfHouse, Status: domain.SpaceStatusReady},
		{Name: "Boiler Room", Type: domain.SpaceTypeService, Status: domain.SpaceStatusOutOfService},
	}
	for _, space := range spaces {
		if _, err := spaceRepo.Create(ctx, space); err != nil {
			return fmt.Errorf("seed space %q: %w", space.Name, err)
		}
		slog.Info("seeded space", "name", space.Name, "space_id", space.ID)
	}

	housekeeping := domain.TaskTypeHousekeeping
	maintenance := domain.TaskTypeMaintenance
	frontDesk := domain.TaskTypeFrontDesk

	users := []*domain.User{
		{Name: "Alice Admin", Token: "seed-token-admin", Role: domain.UserRoleAdmin},
		{Name: "Mark Manager", Token: "seed-token-manager", Role: domain.UserRoleManager},
		{Name: "Hana Housekeeper", Token: "seed-token-hana", Role: domain.UserRoleStaff, Department: &housekeeping, IsOnShift: true},
		{Name: "Hugo Housekeeper", Token: "seed-token-hugo", Role: domain.UserRoleStaff, Department: &housekeeping},
		{Name: "Mike Mechanic", Token: "seed-token-mike", Role: domain.UserRoleStaff, Department: &maintenance, IsOnShift: true},
		{Name: "Fiona Frontdesk", Token: "seed-token-fiona", Role: domain.UserRoleStaff, Department: &frontDesk, IsOnShift: true},
		{Name: "Pat Pending", Token: "seed-token-pat", Role: domain.UserRolePending},
	}
	for _, user := range users {
		if _, err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", user.Name, err)
		}
		slog.Info("seeded user", "name", user.Name, "user_id", user.ID, "role", user.Role)
	}

	boilerRoomID := spaces[7].ID
	spaID := spaces[5].ID
	equipment := []*domain.Equipment{
		{Name: "Boiler #1", SpaceID: &boilerRoomID},
		{Name: "Sauna Heater", SpaceID: &spaID},
		{Name: "Portable Vacuum"},
	}
	for _, item := range equipment {
		if _, err := equipmentRepo.Create(ctx, item); err != nil {
			return fmt.Errorf("seed equipment %q: %w", item.Name, err)
		}
		slog.Info("seeded equipment", "name", item.Name, "equipment_id", item.ID)
	}

	slog.Info("seed complete",
		"spaces", len(spaces),
		"users", len(users),
		"equipment", len(equipment),
	)
	return nil
}
