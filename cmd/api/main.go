package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/taskflow/internal/api/http"
	"github.com/spec-kit/taskflow/internal/api/http/handlers"
	"github.com/spec-kit/taskflow/internal/auth"
	"github.com/spec-kit/taskflow/internal/config"
	"github.com/spec-kit/taskflow/internal/events"
	"github.com/spec-kit/taskflow/internal/observability"
	"github.com/spec-kit/taskflow/internal/persistence"
	"github.com/spec-kit/taskflow/internal/repository"
	"github.com/spec-kit/taskflow/internal/service"
	"github.com/spec-kit/taskflow/internal/worker"
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
	employeeRepo := repository.NewEmployeeRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	categorizationRepo := repository.NewCategorizationRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		Logger:           logger,
	})
	notificationService.RegisterHandlers(dispatcher)

	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:           taskRepo,
		EmployeeRepo:       employeeRepo,
		TeamRepo:           teamRepo,
		CategorizationRepo: categorizationRepo,
		Dispatcher:         dispatcher,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TaskRepo:     taskRepo,
		EmployeeRepo: employeeRepo,
		TaskService:  taskService,
		Logger:       logger,
	})
	skillService := service.NewSkillService(service.SkillDependencies{
		EmployeeRepo: employeeRepo,
		Cache:        redis.Handle(),
		CacheTTL:     cfg.Worker.SkillCacheTTL(),
		Logger:       logger,
	})
	teamService := service.NewTeamService(service.TeamDependencies{
		TeamRepo:           teamRepo,
		TaskRepo:           taskRepo,
		CategorizationRepo: categorizationRepo,
	})
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		TaskRepo:     taskRepo,
		SkillService: skillService,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		TaskRepo:    taskRepo,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		TaskRepo:           taskRepo,
		EmployeeRepo:       employeeRepo,
		CategorizationRepo: categorizationRepo,
		TeamRepo:           teamRepo,
		Cache:              redis.Handle(),
		Logger:             logger,
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(service.AuthDependencies{
		AccountRepo: accountRepo,
		ResetRepo:   resetRepo,
		Tokens:      tokenManager,
		Config:      cfg.Auth,
		Logger:      logger,
	})
	authMiddleware := auth.NewMiddleware(tokenManager, accountRepo)

	cleanupWorker := worker.NewCleanupWorker(taskRepo, taskService, notificationService, metrics, logger, cfg.Worker.CleanupInterval())
	analyticsWorker := worker.NewAnalyticsWorker(analyticsService, logger, cfg.Worker.AnalyticsInterval())
	go cleanupWorker.Start(ctx)
	go analyticsWorker.Start(ctx)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(authService),
		Employees:      handlers.NewEmployeesHandler(employeeService),
		Tasks:          handlers.NewTasksHandler(taskService, assignmentService, teamService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService, skillService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
