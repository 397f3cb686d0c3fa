package router

import (
	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/config"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/controllers"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/database"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/middlewares"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/realtime"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
)

func SetupRouter(cfg config.Config, clients *database.Clients, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigins[0]))
	r.Use(middlewares.LoggerMiddleware())
	// Registered before the routes so every handler chain picks it up.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Repositories
	userRepo := repositories.NewUserRepository(clients.Firestore)
	foodRepo := repositories.NewFoodRepository(clients.Firestore)
	categoryRepo := repositories.NewCategoryRepository(clients.Firestore)
	discountRepo := repositories.NewDiscountRepository(clients.Firestore)
	orderRepo := repositories.NewOrderRepository(clients.Firestore)
	reviewRepo := repositories.NewReviewRepository(clients.Firestore)
	settingsRepo := repositories.NewSettingsRepository(clients.Firestore)
	tokenRepo := repositories.NewTokenRepository(clients.Firestore)

	// Services
	discountSvc := services.NewDiscountService(discountRepo)
	notificationSvc := services.NewNotificationService(clients.Messaging, tokenRepo)
	orderSvc := services.NewOrderService(foodRepo, orderRepo, settingsRepo, discountSvc, discountRepo, notificationSvc)

	// Controllers
	userCtrl := controllers.NewUserController(userRepo)
	foodCtrl := controllers.NewFoodController(foodRepo)
	categoryCtrl := controllers.NewCategoryController(categoryRepo)
	discountCtrl := controllers.NewDiscountController(discountRepo, foodRepo, discountSvc)
	orderCtrl := controllers.NewOrderController(orderRepo, orderSvc)
	reviewCtrl := controllers.NewReviewController(reviewRepo)
	settingsCtrl := controllers.NewSettingsController(settingsRepo)
	notificationCtrl := controllers.NewNotificationController(tokenRepo, notificationSvc)
	adminCtrl := controllers.NewAdminController(orderRepo, foodRepo)
	wsCtrl := controllers.NewWSController(hub, []byte(cfg.WSTicketSecret))

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/food", foodCtrl.GetAllFood)
	r.GET("/food/by-category", foodCtrl.GetFoodByCategory)
	r.GET("/food/:food_id", foodCtrl.GetFoodByID)
	r.GET("/reviews", reviewCtrl.GetReviewsByFood)
	r.GET("/discounts", discountCtrl.GetRegularDiscounts)
	r.GET("/coupons/validate", discountCtrl.ValidateCoupon)
	r.POST("/discounts/evaluate", discountCtrl.EvaluateCart)
	r.GET("/settings", settingsCtrl.GetSettings)

	// WebSocket endpoint, authenticated by short-lived ticket
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WSTicketMiddleware([]byte(cfg.WSTicketSecret)))
	{
		wsGroup.GET("", wsCtrl.Stream)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware(clients.Auth))
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/profile", userCtrl.CreateProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		auth.POST("/reviews", reviewCtrl.CreateReview)
		auth.POST("/fcm-tokens", notificationCtrl.RegisterToken)

		ticketGroup := auth.Group("/auth")
		ticketGroup.Use(middlewares.NewStrictRateLimiter())
		{
			ticketGroup.POST("/ws-ticket", wsCtrl.IssueTicket)
		}
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(clients.Auth))
	admin.Use(middlewares.AdminOnly())
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		admin.POST("/food", foodCtrl.CreateFood)
		admin.PATCH("/food/:food_id", foodCtrl.UpdateFood)
		admin.PATCH("/food/:food_id/availability", foodCtrl.SetFoodAvailability)
		admin.DELETE("/food/:food_id", foodCtrl.DeleteFood)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.GET("/discounts", discountCtrl.GetAllDiscounts)
		admin.POST("/discounts", discountCtrl.CreateDiscount)
		admin.PATCH("/discounts/:discount_id", discountCtrl.UpdateDiscount)
		admin.DELETE("/discounts/:discount_id", discountCtrl.DeleteDiscount)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/pending", orderCtrl.GetPendingOrders)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		admin.DELETE("/reviews/:review_id", reviewCtrl.DeleteReview)

		admin.PATCH("/settings", settingsCtrl.UpdateSettings)
		admin.POST("/notifications/promo", notificationCtrl.SendPromo)

		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	}

	return r
}
