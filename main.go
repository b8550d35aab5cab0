package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/config"
	"github.com/yeremiapane/wildeats-cart/database"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/notify"
	"github.com/yeremiapane/wildeats-cart/router"
	"github.com/yeremiapane/wildeats-cart/services"
	"github.com/yeremiapane/wildeats-cart/storage"
	"github.com/yeremiapane/wildeats-cart/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if cfg.SeedDemo {
		seeded, err := database.SeedDemo(db)
		if err != nil {
			utils.ErrorLogger.Printf("Error seeding demo catalog: %v", err)
		} else if seeded {
			utils.InfoLogger.Println("Demo catalog seeded.")
		}
	}

	slot, stop := openCartSlot(cfg, db)
	defer stop()

	hub := notify.NewHub(utils.Component("notify"))
	registry := cart.NewRegistry(slot, cfg.CartStoragePrefix, utils.Component("cart"))
	registry.OnCreate = hub.Attach
	registry.IdleTTL = cfg.CartTTL

	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Registry:    registry,
		Hub:         hub,
		Checkout:    services.NewCheckoutService(db, utils.Component("checkout")),
		RateLimiter: middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		CORSOrigins: cfg.CORSOrigins,
	})
	r.SetTrustedProxies([]string{"127.0.0.1"})

	utils.InfoLogger.Printf("Listening on port %s (cart store: %s)", cfg.Port, cfg.CartStore)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// openCartSlot picks the durable slot for carts and returns a function that
// releases whatever it started.
func openCartSlot(cfg *config.Config, db *gorm.DB) (cart.Slot, func()) {
	switch cfg.CartStore {
	case config.CartStoreMemory:
		utils.InfoLogger.Println("Carts are kept in memory and are lost on restart.")
		return storage.NewMemorySlot(), func() {}

	case config.CartStoreRedis:
		rs := storage.NewRedisSlot(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CartTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			// Carts still work; providers run degraded until Redis answers.
			utils.ErrorLogger.Printf("Redis at %s unreachable: %v", cfg.RedisAddr, err)
		}
		return rs, func() { rs.Close() }

	default:
		sweeper := services.NewSlotSweeper(db, cfg.CartTTL)
		sweeper.Log = utils.Component("sweeper")
		sweeper.Start()
		return storage.NewGormSlot(db), sweeper.Stop
	}
}
