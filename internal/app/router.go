package app

import (
	_ "wealth_builder_backend/docs"
	"wealth_builder_backend/internal/config"
	"wealth_builder_backend/internal/middleware"
	"wealth_builder_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, gin.H{"code": 404, "message": "Route not found"})
	})

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)
	api.Use(a.limiters.api.Middleware())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(api, c)

	// 2. 需要授权的路由
	authGroup := api.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	a.registerUserRoutes(authGroup, c)
}

func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers) {
	auth := api.Group("/auth")
	auth.Use(a.limiters.auth.Middleware())
	{
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
	}

	learning := api.Group("/learning")
	{
		learning.GET("/paths", c.learning.GetPaths)
		learning.GET("/modules/:id", c.learning.GetModule)
	}

	investments := api.Group("/investments")
	{
		investments.GET("", c.investment.List)
		investments.GET("/:id", c.investment.Get)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	learning := rg.Group("/learning")
	{
		learning.POST("/quiz", a.limiters.quiz.Middleware(), c.learning.SubmitQuiz)
		learning.POST("/progress", c.learning.SubmitProgress)
	}

	user := rg.Group("/user")
	{
		user.GET("/profile", c.user.GetProfile)
		user.PUT("/profile", c.user.UpdateProfile)
		user.GET("/progress", c.user.GetProgress)
	}
}
