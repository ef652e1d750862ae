package main

import (
	"fmt"
	"os"

	"github.com/yungbote/ragulator-backend/internal/clients/chaindir"
	"github.com/yungbote/ragulator-backend/internal/clients/langserve"
	"github.com/yungbote/ragulator-backend/internal/db"
	"github.com/yungbote/ragulator-backend/internal/handlers"
	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/middleware"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/server"
	"github.com/yungbote/ragulator-backend/internal/services"
	"github.com/yungbote/ragulator-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	sessionRepo := repos.NewSessionRepo(thePG, log)
	chainRepo := repos.NewChainRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	configRepo := repos.NewConfigurationRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	commentRepo := repos.NewAnswerCommentRepo(thePG, log)

	// Clients
	log.Info("Setting up clients from main...")
	chainDirectory := chaindir.New(log)
	langserveClient := langserve.NewClient(log)

	// Services
	log.Info("Setting up Services from main...")
	sessionService := services.NewSessionService(thePG, log, sessionRepo)
	chainService := services.NewChainService(thePG, log, chainRepo, sessionRepo, questionRepo, configRepo, answerRepo, chainDirectory, langserveClient)
	configService := services.NewConfigurationService(thePG, log, configRepo, sessionRepo, chainRepo, langserveClient)
	questionService := services.NewQuestionService(thePG, log, questionRepo, sessionRepo)
	answerService := services.NewAnswerService(thePG, log, answerRepo, commentRepo, questionRepo, chainRepo, configRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	sessionHandler := handlers.NewSessionHandler(log, sessionService)
	chainHandler := handlers.NewChainHandler(log, chainService)
	configHandler := handlers.NewConfigurationHandler(log, configService)
	questionHandler := handlers.NewQuestionHandler(log, questionService)
	answerHandler := handlers.NewAnswerHandler(log, answerService)

	// Middleware
	log.Info("Setting up middleware from main...")
	requestLog := middleware.NewRequestLogMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		RequestLog:           requestLog,
		SessionHandler:       sessionHandler,
		ChainHandler:         chainHandler,
		ConfigurationHandler: configHandler,
		QuestionHandler:      questionHandler,
		AnswerHandler:        answerHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
