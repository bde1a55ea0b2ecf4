package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/configs"
	"github.com/MeiyuTech/aet-backend/controllers"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/middlewares"
	"github.com/MeiyuTech/aet-backend/repository"
	"github.com/MeiyuTech/aet-backend/services"
)

// Gateways carries the constructed boundary adapters. Optional ones are
// nil when unconfigured; their endpoints answer with a config error.
type Gateways struct {
	Payment  gateways.PaymentGateway
	Email    gateways.EmailSender
	OCR      *gateways.OCRClient
	Search   *gateways.SearchClient
	Chat     *gateways.ChatClient
	Diplomas *gateways.DiplomaStore
	Notifier *services.NotificationService
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log *zap.Logger, gw Gateways) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	appRepo := repository.NewApplicationRepository(db)
	changeRepo := repository.NewPendingChangeRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	appSvc := services.NewApplicationService(db, appRepo, gw.Notifier, log)
	checkoutSvc := services.NewCheckoutService(db, appRepo, gw.Payment, gw.Notifier, log,
		cfg.SuccessURL, cfg.CheckoutURL, cfg.ShopURL)
	reviewSvc := services.NewReviewService(db, appRepo, changeRepo, gw.Notifier, log)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	appCtrl := controllers.NewApplicationController(appSvc, log)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc, log)
	adminCtrl := controllers.NewAdminController(appSvc, reviewSvc, gw.Email, gw.Diplomas, cfg.CcEmail, log)
	authCtrl := controllers.NewAuthController(authSvc)
	ocrCtrl := controllers.NewOCRController(gw.OCR, log)
	searchCtrl := controllers.NewSearchController(gw.Search, log)
	chatCtrl := controllers.NewChatController(gw.Chat, log)

	// Public
	r.POST("/applications", appCtrl.Submit)
	r.GET("/applications/:code", appCtrl.Detail)

	// Checkout
	r.POST("/checkout/sessions", checkoutCtrl.CreateSession)
	r.GET("/checkout/return", checkoutCtrl.Return)

	// Utility gateways
	api := r.Group("/api")
	{
		api.POST("/ocr", ocrCtrl.DetectText)
		api.POST("/search", searchCtrl.Search)
		api.POST("/chat", chatCtrl.Relay)
	}

	// Admin
	r.POST("/admin/login", authCtrl.Login)

	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.GET("/applications", adminCtrl.List)
		admin.GET("/applications/:code", adminCtrl.Detail)
		admin.GET("/applications/:code/diploma", adminCtrl.Diploma)

		// Two-step review: stage, then confirm or cancel
		admin.POST("/applications/:code/changes", adminCtrl.ProposeChange)
		admin.GET("/applications/:code/changes", adminCtrl.ListChanges)
		admin.POST("/changes/:id/confirm", adminCtrl.ConfirmChange)
		admin.POST("/changes/:id/cancel", adminCtrl.CancelChange)

		admin.POST("/test-email", adminCtrl.TestEmail)
	}
}
