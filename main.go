package main

import (
	"log"
	"time"

	"checkout-service/config"
	"checkout-service/controllers"
	"checkout-service/fulfillment"
	"checkout-service/middleware"
	"checkout-service/providers"
	"checkout-service/routes"
	"checkout-service/sender"
	"checkout-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("[CheckoutService] Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Gateway: live when credentials exist, simulated otherwise so the demo
	// checkout never hard-fails on missing configuration.
	var gateway providers.OrderGateway
	simulated := !cfg.HasGatewayCredentials()
	if simulated {
		logger.Warn("Gateway credentials not configured, using simulated gateway")
		gateway = providers.NewSimulatedProvider()
	} else {
		gateway = providers.NewStickyProvider(cfg.GatewayURL, cfg.GatewayUsername, cfg.GatewayPassword, cfg.GatewayTimeout)
	}

	// Fulfillment: email-backed when SMTP is configured, log-only otherwise.
	var handler fulfillment.Handler
	if smtpSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass); err == nil {
		handler = fulfillment.NewNotifyHandler(smtpSender, logger)
	} else {
		logger.Info("SMTP not configured, webhook fulfillment is log-only", zap.Error(err))
		handler = fulfillment.NewLogHandler(logger)
	}

	checkoutSvc := services.NewCheckoutService(gateway, logger, cfg.GatewayTestMode, simulated)
	webhookSvc := services.NewWebhookService(handler, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	cc := controllers.NewCheckoutController(checkoutSvc, logger)
	wc := controllers.NewWebhookController(webhookSvc, cfg.WebhookSecret, logger)
	dc := controllers.NewDebugController(cfg, gateway, logger)
	routes.RegisterRoutes(r, cc, wc, dc, !cfg.IsProduction())

	logger.Info("Checkout service running", zap.String("port", cfg.Port), zap.Bool("simulated_gateway", simulated))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
