package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ZeynepCam13/OnlineDestek/internal/api/http"
	"github.com/ZeynepCam13/OnlineDestek/internal/api/http/handlers"
	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/config"
	"github.com/ZeynepCam13/OnlineDestek/internal/events"
	"github.com/ZeynepCam13/OnlineDestek/internal/observability"
	"github.com/ZeynepCam13/OnlineDestek/internal/persistence"
	"github.com/ZeynepCam13/OnlineDestek/internal/repository"
	"github.com/ZeynepCam13/OnlineDestek/internal/service"
	"github.com/ZeynepCam13/OnlineDestek/internal/session"
	"github.com/ZeynepCam13/OnlineDestek/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunSchema {
		if err := persistence.EnsureSchema(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	sessions := session.NewRedisManager(redis.Client, cfg.Auth.SessionTTL())
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	sessionMiddleware := auth.NewSessionMiddleware(sessions, cfg.Auth.SessionCookie)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:        handlers.NewUsersHandler(authService, cfg.Auth),
		Tickets:      handlers.NewTicketsHandler(ticketService),
		AdminTickets: handlers.NewAdminTicketsHandler(ticketService),
		Sessions:     sessionMiddleware,
		UserRepo:     userRepo,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
