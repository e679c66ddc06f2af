package app

import (
	"kyra_advising_backend/docs"
	"kyra_advising_backend/internal/config"
	"kyra_advising_backend/internal/middleware"
	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		authGroup.POST("/queries", c.query.Ask)
		authGroup.POST("/queries/rating", c.query.Rate)
		authGroup.GET("/queries/history", c.query.History)

		authGroup.POST("/projects", c.project.SubmitProject)
		authGroup.GET("/projects/mine", c.project.MyProjects)
		authGroup.GET("/projects/current", c.project.CurrentProject)

		// Students are restricted to their own rows inside the handlers.
		authGroup.GET("/export/csv", c.export.ExportCSV)
		authGroup.GET("/export/pdf", c.export.ExportPDF)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/users", c.user.RegisterUser)
		admin.DELETE("/users/:email", c.user.DeleteUser)
		admin.POST("/users/reset-password", c.user.ResetPassword)
		admin.POST("/users/bulk", c.user.BulkRegister)
		admin.GET("/students", c.user.ListStudents)

		admin.POST("/mappings", c.project.ImportMappings)
		admin.GET("/projects", c.project.AvailableProjects)

		admin.GET("/dashboard", c.dashboard.Stats)
	}
}
