package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/toptours/api-go/config"
	"github.com/toptours/api-go/controllers"
	"github.com/toptours/api-go/middleware"
	"gorm.io/gorm"
)

// Deps carries the explicitly constructed clients every controller receives
// by injection.
type Deps struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Stripe *config.StripeClient
	Viator *config.ViatorClient
	Cache  *redis.Client
	Mailer *config.Mailer
	Logger *slog.Logger
}

func SetupRoutes(r *gin.Engine, deps Deps) {
	// Initialize controllers
	destinationController := controllers.NewDestinationController(deps.DB)
	tourController := controllers.NewTourController(deps.DB, deps.Viator, deps.Cache, deps.Logger)
	restaurantController := controllers.NewRestaurantController(deps.DB, deps.Stripe, deps.Cfg, deps.Logger)
	operatorController := controllers.NewOperatorController(deps.DB, deps.Stripe, deps.Cfg, deps.Logger)
	promotionController := controllers.NewPromotionController(deps.DB, deps.Stripe, deps.Cfg, deps.Cache, deps.Logger)
	travelPlanController := controllers.NewTravelPlanController(deps.DB)
	guideController := controllers.NewGuideController(deps.DB)
	listingController := controllers.NewListingController(deps.DB)
	uploadController := controllers.NewUploadController(deps.Cfg)
	webhookController := controllers.NewWebhookController(deps.DB, deps.Stripe, deps.Mailer, deps.Logger)

	// Webhooks verify their own signature and sit outside the auth groups.
	r.POST("/api/webhooks/stripe", webhookController.HandleStripeWebhook)

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/destinations", destinationController.GetDestinations)
		public.GET("/destinations/:slug", destinationController.GetDestinationBySlug)

		public.GET("/tours/search", tourController.SearchTours)
		public.GET("/tours/product/:code", tourController.GetTour)

		public.GET("/restaurants", restaurantController.GetRestaurants)
		public.GET("/restaurants/:id", restaurantController.GetRestaurant)

		public.GET("/promotion/leaderboard", promotionController.GetLeaderboard)
		public.GET("/promotion/top-promoters", promotionController.GetTopPromoters)

		public.GET("/guides/:destination/:category", guideController.GetCategoryGuide)
		public.GET("/restaurant-guides/:destination/:category", guideController.GetRestaurantGuide)

		public.GET("/baby-equipment-rentals", listingController.GetBabyEquipmentRentals)
		public.GET("/partner-guides", listingController.GetPartnerGuides)

		// Travel plan reads are public but answer differently for the
		// owner, so claims are extracted when a token is sent.
		optionalAuth := middleware.OptionalAuthMiddleware(deps.Cfg.SupabaseJWTSecret)
		public.GET("/travel-plans", optionalAuth, travelPlanController.GetTravelPlans)
		public.GET("/travel-plans/:slug", optionalAuth, travelPlanController.GetTravelPlan)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(deps.Cfg.SupabaseJWTSecret))
	{
		protected.POST("/restaurants/:id/subscribe", restaurantController.Subscribe)
		protected.POST("/operators/:id/subscribe", operatorController.Subscribe)

		protected.GET("/promotion/account", promotionController.GetAccount)
		protected.POST("/promotion/spend", promotionController.SpendPoints)
		protected.POST("/promotion/boost", promotionController.InstantBoost)

		protected.POST("/travel-plans", travelPlanController.CreateTravelPlan)
		protected.PUT("/travel-plans/:id", travelPlanController.UpdateTravelPlan)
		protected.DELETE("/travel-plans/:id", travelPlanController.DeleteTravelPlan)

		protected.POST("/uploads/presign", uploadController.GetPresignedURL)
		protected.DELETE("/uploads/*key", uploadController.DeleteFile)
	}

	// Admin routes (CRM and content management)
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(deps.Cfg.SupabaseJWTSecret), middleware.AdminMiddleware())
	{
		admin.GET("/crm/operators", operatorController.ListCRM)
		admin.POST("/crm/operators", operatorController.CreateCRM)
		admin.PUT("/crm/operators/:id", operatorController.UpdateCRM)
		admin.PUT("/crm/operators/:id/status", operatorController.UpdateCRMStatus)

		admin.PUT("/guides/category", guideController.UpsertCategoryGuide)
		admin.PUT("/guides/restaurant", guideController.UpsertRestaurantGuide)

		admin.POST("/baby-equipment-rentals", listingController.CreateBabyEquipmentRental)
		admin.PUT("/baby-equipment-rentals/:id/approve", listingController.ApproveBabyEquipmentRental)
		admin.POST("/partner-guides", listingController.CreatePartnerGuide)
		admin.PUT("/partner-guides/:id/approve", listingController.ApprovePartnerGuide)
	}
}
