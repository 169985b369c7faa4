package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-management/backend/config"
	"task-management/backend/handlers"
	"task-management/backend/logging"
	"task-management/backend/middleware"
	"task-management/backend/models"
	"task-management/backend/repositories"
	"task-management/backend/services"
	"task-management/backend/utils"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	logging.InitLogger("task-service", cfg.LogFile, cfg.LogLevel)
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Service...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: %v", err)
	}
	defer store.Disconnect(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	db := store.Database()
	taskRepo := repositories.NewTaskRepository(db)
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	authorityRepo := repositories.NewAuthorityRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)

	blobs, err := repositories.NewBlobStore(db)
	if err != nil {
		logging.Logger.Fatalf("Event ID: GRIDFS_INIT_FAILED, Description: %v", err)
	}

	if err := authorityRepo.Seed(ctx, models.DefaultAuthorities); err != nil {
		logging.Logger.Fatalf("Event ID: AUTHORITY_SEED_FAILED, Description: %v", err)
	}
	if err := services.SeedAdmin(ctx, userRepo, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logging.Logger.Fatalf("Event ID: ADMIN_SEED_FAILED, Description: %v", err)
	}

	var activity services.ActivityRecorder
	if cfg.CassandraHosts != "" {
		activityRepo, err := repositories.NewActivityRepository(cfg.CassandraHosts)
		if err != nil {
			logging.Logger.Errorf("Event ID: CASSANDRA_CONNECTION_FAILED, Description: Activity log disabled: %v", err)
		} else {
			defer activityRepo.Close()
			activity = activityRepo
		}
	} else {
		logging.Logger.Info("Event ID: ACTIVITY_LOG_DISABLED, Description: CASS_DB is not set, task activity is not recorded")
	}

	var notifier services.Notifier
	if cfg.NotificationsServiceURL != "" {
		breaker := utils.NewCircuitBreaker("notifications-cb", 5*time.Second)
		notifier = services.NewNotificationService(cfg.NotificationsServiceURL, utils.NewHTTPClient(), breaker)
	}

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	taskService := services.NewTaskService(store, taskRepo, userRepo, projectRepo, commentRepo, attachmentRepo, activity, notifier)
	router := handlers.NewRouter(handlers.Router{
		Users:       handlers.NewUserHandler(services.NewUserService(store, userRepo, departmentRepo, authorityRepo), services.NewAuthService(userRepo, issuer)),
		Authorities: handlers.NewAuthorityHandler(services.NewAuthorityService(store, authorityRepo)),
		Departments: handlers.NewDepartmentHandler(services.NewDepartmentService(store, departmentRepo, projectRepo, userRepo)),
		Projects:    handlers.NewProjectHandler(services.NewProjectService(store, projectRepo, departmentRepo)),
		Tasks:       handlers.NewTaskHandler(taskService),
		Comments:    handlers.NewCommentHandler(services.NewCommentService(store, commentRepo, taskRepo, userRepo)),
		Attachments: handlers.NewAttachmentHandler(services.NewAttachmentService(store, attachmentRepo, taskRepo, blobs, activity)),
	}, middleware.JWTAuthMiddleware(issuer))

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           middleware.EnableCORS(cfg.CORSOrigin)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Event ID: SERVER_SHUTDOWN_FAILED, Description: %v", err)
	}
}
