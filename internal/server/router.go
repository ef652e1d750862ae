package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ragulator-backend/internal/handlers"
	"github.com/yungbote/ragulator-backend/internal/middleware"
)

type RouterConfig struct {
	RequestLog           *middleware.RequestLogMiddleware
	SessionHandler       *handlers.SessionHandler
	ChainHandler         *handlers.ChainHandler
	ConfigurationHandler *handlers.ConfigurationHandler
	QuestionHandler      *handlers.QuestionHandler
	AnswerHandler        *handlers.AnswerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(cfg.RequestLog.LogRequests())

	router.GET("/healthcheck", handlers.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Sessions
		v1.POST("/sessions", cfg.SessionHandler.CreateSession)
		v1.GET("/sessions", cfg.SessionHandler.ListSessions)
		v1.GET("/sessions/:session_id", cfg.SessionHandler.GetSession)
		v1.PATCH("/sessions/:session_id", cfg.SessionHandler.UpdateSession)
		v1.DELETE("/sessions/:session_id", cfg.SessionHandler.DeleteSession)

		// Chains
		v1.GET("/available-chains", cfg.ChainHandler.ListAvailableChains)
		v1.POST("/sessions/:session_id/select-chains", cfg.ChainHandler.SelectChains)
		v1.GET("/sessions/:session_id/chains", cfg.ChainHandler.ListSessionChains)
		v1.DELETE("/sessions/:session_id/chains", cfg.ChainHandler.DeleteSessionChains)
		v1.GET("/sessions/:session_id/chains/:chain_id", cfg.ChainHandler.GetChain)
		v1.DELETE("/sessions/:session_id/chains/:chain_id", cfg.ChainHandler.DeleteChain)
		v1.POST("/sessions/:session_id/chains/:chain_id/invoke", cfg.ChainHandler.InvokeChain)

		// Configurations
		v1.POST("/sessions/:session_id/chains/:chain_id/configurations", cfg.ConfigurationHandler.CreateConfiguration)
		v1.GET("/sessions/:session_id/chains/:chain_id/configurations", cfg.ConfigurationHandler.ListChainConfigurations)
		v1.GET("/sessions/:session_id/chains/:chain_id/config-schema", cfg.ConfigurationHandler.GetChainSchema)
		v1.GET("/sessions/:session_id/configurations", cfg.ConfigurationHandler.ListSessionConfigurations)
		v1.GET("/sessions/:session_id/configurations/:config_id", cfg.ConfigurationHandler.GetConfiguration)
		v1.PATCH("/sessions/:session_id/configurations/:config_id", cfg.ConfigurationHandler.UpdateConfiguration)
		v1.DELETE("/sessions/:session_id/configurations/:config_id", cfg.ConfigurationHandler.DeleteConfiguration)

		// Questions
		v1.POST("/sessions/:session_id/questions", cfg.QuestionHandler.CreateQuestion)
		v1.POST("/sessions/:session_id/questions/bulk", cfg.QuestionHandler.CreateQuestionsBulk)
		v1.GET("/sessions/:session_id/questions", cfg.QuestionHandler.ListSessionQuestions)
		v1.DELETE("/sessions/:session_id/questions", cfg.QuestionHandler.DeleteSessionQuestions)
		v1.DELETE("/sessions/:session_id/questions/bulk", cfg.QuestionHandler.DeleteQuestionsBulk)
		v1.PATCH("/sessions/:session_id/questions/:question_id", cfg.QuestionHandler.UpdateQuestion)
		v1.DELETE("/sessions/:session_id/questions/:question_id", cfg.QuestionHandler.DeleteQuestion)

		// Answers
		v1.POST("/questions/:question_id/answers", cfg.AnswerHandler.CreateAnswer)
		v1.POST("/questions/:question_id/answers/bulk", cfg.AnswerHandler.CreateAnswersBulk)
		v1.GET("/questions/:question_id/answers", cfg.AnswerHandler.ListQuestionAnswers)
		v1.DELETE("/questions/:question_id/answers", cfg.AnswerHandler.DeleteQuestionAnswers)
		v1.PATCH("/questions/:question_id/answers/:answer_id", cfg.AnswerHandler.UpdateAnswerScore)
		v1.DELETE("/questions/:question_id/answers/:answer_id", cfg.AnswerHandler.DeleteAnswer)
		v1.GET("/configurations/:configuration_id/answers", cfg.AnswerHandler.ListConfigurationAnswers)
		v1.GET("/configurations/:configuration_id/score", cfg.AnswerHandler.GetConfigurationScore)

		// Comments
		v1.POST("/answers/:answer_id/comments", cfg.AnswerHandler.CreateComment)
		v1.GET("/answers/:answer_id/comments", cfg.AnswerHandler.ListComments)
		v1.PATCH("/answers/:answer_id/comments/:comment_id", cfg.AnswerHandler.UpdateComment)
		v1.DELETE("/answers/:answer_id/comments/:comment_id", cfg.AnswerHandler.DeleteComment)
	}

	return router
}
