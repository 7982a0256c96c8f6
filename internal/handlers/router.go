package handlers

import (
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/middleware"
	"artisan-marketplace-backend/internal/models"
	"artisan-marketplace-backend/internal/ratelimit"
	"artisan-marketplace-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles the business layer the HTTP surface exposes.
type Services struct {
	Projects     *services.ProjectService
	Proposals    *services.ProposalService
	Artisans     *services.ArtisanService
	Reviews      *services.ReviewService
	Images       *services.ImageService
	Dictionaries *services.DictionaryService
}

// RouterConfig carries the cross-cutting collaborators of the router.
type RouterConfig struct {
	Logger            *logrus.Logger
	Metrics           *metrics.Metrics
	Auth              *middleware.Authenticator
	Throttle          *ratelimit.Throttle
	GenerationLimiter ratelimit.Limiter
	Swagger           bool
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(cfg.Logger),
		middleware.Recovery(),
		cfg.Metrics.Middleware(),
		middleware.Locale(),
	)

	router.GET("/health", HealthHandler)
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	if cfg.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	dictionaries := NewDictionariesHandler(svc.Dictionaries)
	generations := NewGenerationsHandler(svc.Images)
	projects := NewProjectsHandler(svc.Projects)
	proposals := NewProposalsHandler(svc.Proposals)
	artisans := NewArtisansHandler(svc.Artisans)
	reviews := NewReviewsHandler(svc.Reviews)

	requireClient := middleware.RequireRole(models.RoleClient)
	requireArtisan := middleware.RequireRole(models.RoleArtisan)

	public := router.Group("/api/v1", cfg.Auth.Optional(), middleware.Throttle(cfg.Throttle, cfg.Metrics))
	{
		public.GET("/categories", dictionaries.Categories)
		public.GET("/materials", dictionaries.Materials)
		public.GET("/specializations", dictionaries.Specializations)

		public.GET("/artisans", artisans.ListArtisans)
		public.GET("/artisans/:artisan_id", artisans.GetArtisan)
		public.GET("/artisans/:artisan_id/reviews", reviews.ListForArtisan)
	}

	api := router.Group("/api/v1", cfg.Auth.Required(), middleware.Throttle(cfg.Throttle, cfg.Metrics))
	{
		api.POST("/generations", requireClient, middleware.GenerationLimit(cfg.GenerationLimiter, cfg.Metrics), generations.Generate)
		api.GET("/generations", generations.List)
		api.GET("/generations/:image_id", generations.Get)

		api.POST("/projects", requireClient, projects.CreateProject)
		api.GET("/projects", projects.ListProjects)
		api.GET("/projects/mine", requireClient, projects.ListMyProjects)
		api.GET("/projects/:project_id", projects.GetProject)
		api.PATCH("/projects/:project_id/status", projects.UpdateStatus)
		api.POST("/projects/:project_id/accept", projects.AcceptProposal)

		api.POST("/projects/:project_id/proposals", proposals.Submit)
		api.GET("/projects/:project_id/proposals", proposals.ListForProject)
		api.GET("/proposals/mine", requireArtisan, proposals.ListMine)

		api.POST("/projects/:project_id/reviews", reviews.CreateReview)

		api.GET("/artisans/me/profile", requireArtisan, artisans.GetMyProfile)
		api.PUT("/artisans/me/profile", requireArtisan, artisans.UpsertMyProfile)
		api.PATCH("/artisans/me/profile/visibility", requireArtisan, artisans.SetVisibility)
		api.POST("/artisans/me/portfolio", requireArtisan, artisans.AddPortfolioImage)
		api.DELETE("/artisans/me/portfolio/:image_id", requireArtisan, artisans.DeletePortfolioImage)
	}

	return router
}
