package app

import (
	"formeo_backend/docs"
	"formeo_backend/internal/config"
	"formeo_backend/internal/middleware"
	"formeo_backend/internal/model"
	"formeo_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerTraineeRoutes(authGroup, c)
		a.registerStaffRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Catalog is browsable anonymously; staff see drafts too.
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.catalog.ListCourses)
		public.GET("/courses/:id", c.catalog.GetCourse)
	}
}

func (a *App) registerTraineeRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)

	rg.GET("/forms", c.assessment.ListActiveForms)
	rg.GET("/forms/:id/session", c.assessment.OpenSession)
	rg.PUT("/forms/:id/session/answers", c.assessment.EditAnswer)
	rg.POST("/forms/:id/session/draft", c.assessment.SaveDraft)
	rg.POST("/forms/:id/session/submit", c.assessment.Submit)
	rg.GET("/my/corrections", c.assessment.MyCorrections)

	rg.POST("/enrollments", c.enrollment.Request)
	rg.GET("/my/enrollments", c.enrollment.MyEnrollments)
}

func (a *App) registerStaffRoutes(rg *gin.RouterGroup, c *controllers) {
	staff := rg.Group("/staff")
	staff.Use(middleware.RoleMiddleware(model.Staff))
	{
		staff.POST("/forms", c.formAdmin.CreateForm)
		staff.GET("/forms", c.formAdmin.ListForms)
		staff.GET("/forms/:id", c.formAdmin.GetForm)
		staff.PUT("/forms/:id", c.formAdmin.UpdateForm)
		staff.DELETE("/forms/:id", c.formAdmin.DeleteForm)
		staff.POST("/forms/:id/publish", c.formAdmin.PublishForm)
		staff.GET("/forms/:id/submissions", c.formAdmin.ListSubmissions)
		staff.GET("/submissions/:id", c.formAdmin.GetSubmission)
		staff.POST("/submissions/:id/review", c.formAdmin.ReviewSubmission)

		staff.POST("/courses", c.catalog.CreateCourse)
		staff.PUT("/courses/:id", c.catalog.UpdateCourse)
		staff.DELETE("/courses/:id", c.catalog.DeleteCourse)
		staff.POST("/courses/:id/publish", c.catalog.PublishCourse)

		staff.GET("/enrollments", c.enrollment.ListPending)
		staff.POST("/enrollments/:id/decide", c.enrollment.Decide)

		staff.POST("/quotes", c.quote.CreateQuote)
		staff.GET("/quotes", c.quote.ListQuotes)
		staff.GET("/quotes/:id", c.quote.GetQuote)
		staff.POST("/quotes/:id/status", c.quote.ChangeQuoteStatus)
		staff.POST("/quotes/:id/document", c.quote.UploadQuoteDocument)
		staff.POST("/quotes/:id/contract", c.quote.IssueContract)
		staff.GET("/contracts", c.quote.ListContracts)
		staff.POST("/contracts/:id/status", c.quote.ChangeContractStatus)
		staff.POST("/contracts/:id/document", c.quote.UploadContractDocument)
	}
}
