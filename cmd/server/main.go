package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/zanco/backend/internal/application/cart"
	catalogapp "github.com/zanco/backend/internal/application/catalog"
	identityapp "github.com/zanco/backend/internal/application/identity"
	"github.com/zanco/backend/internal/application/notification"
	orderapp "github.com/zanco/backend/internal/application/order"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"github.com/zanco/backend/internal/infrastructure/auth"
	"github.com/zanco/backend/internal/infrastructure/cache"
	"github.com/zanco/backend/internal/infrastructure/config"
	"github.com/zanco/backend/internal/infrastructure/email"
	"github.com/zanco/backend/internal/infrastructure/event"
	"github.com/zanco/backend/internal/infrastructure/logger"
	"github.com/zanco/backend/internal/infrastructure/persistence"
	"github.com/zanco/backend/internal/infrastructure/storage"
	"github.com/zanco/backend/internal/interfaces/http/handler"
	"github.com/zanco/backend/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	resetRepo := persistence.NewGormPasswordResetRepository(db.DB)

	// Guest carts live in Redis. A dev box without Redis falls back to
	// the in-memory store, which loses carts on restart.
	var guestStore cart.GuestStore
	if redisStore, err := cache.NewRedisGuestCartStore(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory guest cart store", zap.Error(err))
		guestStore = cache.NewInMemoryGuestCartStore()
	} else {
		guestStore = redisStore
		log.Info("Redis guest cart store connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var mailer email.Mailer = email.NopMailer{}
	if cfg.Email.Enabled {
		mailer = email.NewResendMailer(cfg.Email)
		log.Info("Email sending enabled", zap.String("from", cfg.Email.FromAddress))
	}

	var images storage.ImageStorage = storage.NewStubImageStorage()
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ImageStorage(cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		images = s3Storage
		log.Info("S3 image storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	checkoutPolicy := orderapp.CheckoutPolicy{
		FreeShippingThreshold: valueobject.NewMoneyNGNFromFloat(cfg.Checkout.FreeShippingThreshold),
		ShippingFee:           valueobject.NewMoneyNGNFromFloat(cfg.Checkout.ShippingFee),
		TaxRate:               decimal.NewFromFloat(cfg.Checkout.TaxRate),
		PaymentWindow:         cfg.Checkout.PaymentWindow,
		BankName:              cfg.Checkout.BankName,
		BankAccountName:       cfg.Checkout.BankAccountName,
		BankAccountNumber:     cfg.Checkout.BankAccountNumber,
	}

	productService := catalogapp.NewProductService(productRepo, images, eventBus)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	cartService := cartapp.NewCartService(cartRepo, guestStore, productRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, checkoutPolicy, eventBus, log)
	authService := identityapp.NewAuthService(userRepo, resetRepo, jwtService, eventBus, log)

	// Transactional email on domain events
	notifier := notification.NewEmailNotifier(mailer, orderRepo, userRepo, notification.Settings{
		AdminEmail:        cfg.Checkout.AdminEmail,
		BaseURL:           cfg.Email.BaseURL,
		BankName:          cfg.Checkout.BankName,
		BankAccountName:   cfg.Checkout.BankAccountName,
		BankAccountNumber: cfg.Checkout.BankAccountNumber,
		PaymentWindow:     cfg.Checkout.PaymentWindow,
	}, log)
	eventBus.Subscribe(notifier, notifier.EventTypes()...)

	engine := router.New(cfg, jwtService, log, router.Handlers{
		System:  handler.NewSystemHandler(db, cfg.App.Name, version),
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Review:  handler.NewReviewHandler(reviewService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(orderService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
