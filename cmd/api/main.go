package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/missao-redime/church-service/internal/api/http"
	"github.com/missao-redime/church-service/internal/api/http/handlers"
	"github.com/missao-redime/church-service/internal/auth"
	"github.com/missao-redime/church-service/internal/config"
	"github.com/missao-redime/church-service/internal/events"
	"github.com/missao-redime/church-service/internal/observability"
	"github.com/missao-redime/church-service/internal/persistence"
	"github.com/missao-redime/church-service/internal/repository"
	"github.com/missao-redime/church-service/internal/service"
	"github.com/missao-redime/church-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)
	prayerRepo := repository.NewPrayerRequestRepository(pool)
	sermonRepo := repository.NewSermonRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		MemberRepo: memberRepo,
	})
	memberService := service.NewMemberService(*cfg, service.MemberDependencies{
		UserRepo:   userRepo,
		MemberRepo: memberRepo,
		Dispatcher: dispatcher,
	})
	departmentService := service.NewDepartmentService(*cfg, departmentRepo)
	donationService := service.NewDonationService(donationRepo, dispatcher)
	prayerService := service.NewPrayerService(prayerRepo, dispatcher)
	contentService := service.NewContentService(sermonRepo, redis, logger)

	tokens := authService.TokenManager()
	cookies := auth.NewSessionCookies(cfg.Auth.CookieSecure)
	guard := auth.NewGuard(tokens)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService, cookies),
		Members:     handlers.NewMembersHandler(memberService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		Donations:   handlers.NewDonationsHandler(donationService, tokens),
		Prayer:      handlers.NewPrayerHandler(prayerService),
		Content:     handlers.NewContentHandler(contentService),
		Admin:       handlers.NewAdminHandler(memberService, departmentService),
		Guard:       guard,
		Tokens:      tokens,
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
