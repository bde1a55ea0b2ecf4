package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MeiyuTech/aet-backend/configs"
	"github.com/MeiyuTech/aet-backend/gateways"
	"github.com/MeiyuTech/aet-backend/middlewares"
	"github.com/MeiyuTech/aet-backend/pkg/logger"
	"github.com/MeiyuTech/aet-backend/repository"
	"github.com/MeiyuTech/aet-backend/routes"
	"github.com/MeiyuTech/aet-backend/services"
)

const gatewayTimeout = 10 * time.Second

func main() {
	cfg := configs.LoadConfig()

	zlog := logger.New(cfg.LogLevel)
	defer zlog.Sync()

	// DB
	db, err := configs.ConnectDB(cfg.DBSource)
	if err != nil {
		log.Fatalf("connect database failed: %v", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
	if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Gateways; payment is mandatory, the rest degrade per endpoint.
	payment, err := gateways.NewStripeClient(cfg.StripeBaseURL, cfg.StripeSecretKey, gatewayTimeout)
	if err != nil {
		log.Fatalf("payment gateway: %v", err)
	}

	gw := routes.Gateways{
		Payment: payment,
		OCR:     gateways.NewOCRClient(cfg.OCRBaseURL, cfg.OCRAPIKey, gatewayTimeout),
		Search:  gateways.NewSearchClient(cfg.SearchBaseURL, cfg.SearchAPIKey, cfg.SearchEngineID, gatewayTimeout),
		Chat:    gateways.NewChatClient(cfg.ChatBaseURL, cfg.ChatAPIKey, cfg.ChatModel, gatewayTimeout),
	}

	ctx := context.Background()

	if cfg.FromEmail != "" {
		mailer, err := gateways.NewSESMailer(ctx, cfg.SESRegion, cfg.FromEmail)
		if err != nil {
			log.Fatalf("email gateway: %v", err)
		}
		gw.Email = mailer
	} else {
		zlog.Warn("FROM_EMAIL not set, email disabled")
	}

	if cfg.MinioEndpoint != "" {
		diplomas, err := gateways.NewDiplomaStore(
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL, cfg.MinioBucket)
		if err != nil {
			log.Fatalf("file storage gateway: %v", err)
		}
		gw.Diplomas = diplomas
	}

	// Outbox dispatcher
	notifier := services.NewNotificationService(repository.NewOutboxRepository(db), gw.Email, zlog)
	notifier.Start(ctx)
	gw.Notifier = notifier

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	routes.RegisterRoutes(r, db, cfg, zlog, gw)

	addr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
