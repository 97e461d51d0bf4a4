package router

import (
	"time"

	"canova-go/internal/config"
	"canova-go/internal/flow"
	"canova-go/internal/handlers"
	"canova-go/internal/repository"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, db *gorm.DB) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Stores and the flow core
	pages := repository.NewPages(db)
	questions := repository.NewQuestions(db)
	conditions := repository.NewConditions(db)

	conditionService := flow.NewService(questions, conditions, log)
	evaluator := flow.NewEvaluator(conditions, pages, log)
	sequencer := flow.NewSequencer(conditions, pages, log)

	conditionHandler := handlers.NewConditionHandler(conditionService, evaluator, sequencer, log)
	pageHandler := handlers.NewPageHandler(pages, log)
	questionHandler := handlers.NewQuestionHandler(questions, log)

	// The evaluate endpoint is respondent-facing and rate limited per client IP.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(config.Conf.Server.EvaluateRateLimit),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/condition", conditionHandler.Create)
		api.POST("/condition/evaluate", limiter, conditionHandler.Evaluate)
		api.POST("/condition/page-flow", conditionHandler.PageFlow)

		api.POST("/page", pageHandler.Create)
		api.GET("/page/:formId", pageHandler.List)
		api.POST("/question", questionHandler.Create)
	}

	return router
}
