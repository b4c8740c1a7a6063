package main

import (
	"context"
	"log"

	"go-booking-core/config"
	"go-booking-core/internal/cache"
	"go-booking-core/internal/database"
	"go-booking-core/internal/handler"
	"go-booking-core/internal/middleware"
	"go-booking-core/internal/payment"
	"go-booking-core/internal/queue"
	"go-booking-core/internal/repository"
	"go-booking-core/internal/service"
	"go-booking-core/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	checkinRepo := repository.NewCheckInRepository(pool)

	// 收據走 Redis Stream，worker 在背景出信
	receiptQueue, err := queue.NewRedisStreamReceiptQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize receipt queue: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiptWorker := worker.NewReceiptWorker(worker.NewLogNotificationSink(), receiptQueue)
	if err := receiptWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start receipt worker: %v", err)
	}

	captures := payment.NewCaptureVerifier(&cfg.Payment)
	debouncer := cache.NewRedisScanDebouncer(rdb, cfg.CheckIn.DebounceWindow)

	// services
	settlementService := service.NewSettlementService(
		pool, bookingRepo, eventRepo, promoRepo, captures, receiptQueue,
		cfg.Settlement, cfg.Payment.Currency,
	)
	checkinService := service.NewCheckInService(pool, bookingRepo, eventRepo, checkinRepo, debouncer)
	bookingService := service.NewBookingService(pool, bookingRepo, eventRepo)
	eventService := service.NewEventService(eventRepo)
	promoService := service.NewPromoService(promoRepo)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api/v1", middleware.RequireAuth(cfg.Auth.JWTSecret))
	organizerOnly := middleware.RequireOrganizer()

	handler.NewCheckoutHandler(settlementService).RegisterRoutes(api)
	handler.NewCheckInHandler(checkinService).RegisterRoutes(api, organizerOnly)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api, organizerOnly)
	handler.NewEventHandler(eventService).RegisterRoutes(api, organizerOnly)
	handler.NewPromoHandler(promoService).RegisterRoutes(api, organizerOnly)

	router.Run() // デフォルトで0.0.0.0:8080で待機します
}
