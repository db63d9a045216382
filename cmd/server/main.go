package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"singlang/internal/config"
	"singlang/internal/database"
	"singlang/internal/handlers"
	"singlang/internal/inference"
	"singlang/internal/repository"
	"singlang/internal/service"
	"singlang/internal/sync"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	loginRepo := repository.NewLoginRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	studyPlanRepo := repository.NewStudyPlanRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, loginRepo, emailService, cfg.JWTSecret, cfg.TokenDuration)
	scheduleService := service.NewScheduleService(scheduleRepo, studyPlanRepo, catalogRepo, progressRepo)
	studyPlanService := service.NewStudyPlanService(studyPlanRepo, catalogRepo, progressRepo, scheduleService)
	progressService := service.NewProgressService(progressRepo, catalogRepo, loginRepo)
	quizService := service.NewQuizService(quizRepo, catalogRepo)
	inferenceClient := inference.NewClient(cfg.PythonBin, cfg.AlphabetClassifier, cfg.WordClassifier, cfg.InferenceTimeout)

	// Catalog sync: optionally at startup, always nightly
	syncService, err := sync.NewService(catalogRepo, quizRepo, cfg.MediaRoot, cfg.MediaBaseURL, cfg.LessonConfigPath, cfg.QuestionSeedPath)
	if err != nil {
		log.Fatalf("Failed to initialize sync service: %v", err)
	}
	if cfg.SyncOnStartup {
		if err := syncService.Run(); err != nil {
			log.Printf("Warning: startup catalog sync failed: %v", err)
		}
	}

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Day().At("03:00").Do(func() {
		if err := syncService.Run(); err != nil {
			log.Printf("Nightly catalog sync failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule nightly sync: %v", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	studyPlanHandler := handlers.NewStudyPlanHandler(studyPlanService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	progressHandler := handlers.NewProgressHandler(progressService)
	quizHandler := handlers.NewQuizHandler(quizService, studyPlanService, inferenceClient)
	dictionaryHandler := handlers.NewDictionaryHandler(catalogRepo)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Study plan routes
	mux.HandleFunc("POST /api/studyplan", middleware.RequireAuth(studyPlanHandler.Create))
	mux.HandleFunc("GET /api/studyplan", middleware.RequireAuth(studyPlanHandler.Get))
	mux.HandleFunc("PUT /api/studyplan", middleware.RequireAuth(studyPlanHandler.Edit))
	mux.HandleFunc("POST /api/studyplan/level/{subject}", middleware.RequireAuth(studyPlanHandler.UpdateLevel))

	// Schedule routes
	mux.HandleFunc("POST /api/schedule/generate", middleware.RequireAuth(scheduleHandler.Generate))
	mux.HandleFunc("GET /api/schedule/today", middleware.RequireAuth(scheduleHandler.Today))

	// Progress routes
	mux.HandleFunc("GET /api/progress/subject/{subject}", middleware.RequireAuth(progressHandler.Subject))
	mux.HandleFunc("GET /api/progress/lesson/{lessonID}", middleware.RequireAuth(progressHandler.Lesson))
	mux.HandleFunc("POST /api/progress/sign", middleware.RequireAuth(progressHandler.SaveSign))
	mux.HandleFunc("GET /api/progress/weekly-signs", middleware.RequireAuth(progressHandler.WeeklySigns))
	mux.HandleFunc("GET /api/streak", middleware.RequireAuth(progressHandler.Streak))

	// Quiz routes
	mux.HandleFunc("GET /api/quiz/modules/{subject}", middleware.RequireAuth(quizHandler.Modules))
	mux.HandleFunc("GET /api/quiz/generate/{module}", middleware.RequireAuth(quizHandler.Generate))
	mux.HandleFunc("POST /api/quiz/progress", middleware.RequireAuth(quizHandler.SaveProgress))
	mux.HandleFunc("GET /api/quiz/score/{module}", middleware.RequireAuth(quizHandler.Score))
	mux.HandleFunc("POST /api/quiz/infer/sign", middleware.RequireAuth(quizHandler.InferSign))
	mux.HandleFunc("POST /api/quiz/infer/word", middleware.RequireAuth(quizHandler.InferWord))

	// Dictionary
	mux.HandleFunc("GET /api/dictionary", middleware.RequireAuth(dictionaryHandler.Get))

	// Wrap with logging middleware
	handler := middleware.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
