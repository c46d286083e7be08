package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/XCLUSIIVE05/cashapp/internal/api"
	"github.com/XCLUSIIVE05/cashapp/internal/config"
	"github.com/XCLUSIIVE05/cashapp/internal/middleware"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
	"github.com/XCLUSIIVE05/cashapp/internal/store/gormstore"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	eng := service.New(gormstore.New(db), service.SimulatedPrice)

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/user", api.SignupHandler(eng))
	r.GET("/user", api.LoginHandler(eng, cfg.JWTSecret))

	authed := middleware.JWTAuth(cfg.JWTSecret)

	// Account
	r.GET("/account", authed, api.AccountHandler(eng, redisClient))

	// Payments
	payGroup := r.Group("/pay")
	payGroup.Use(authed)
	payGroup.POST("/transfer", api.TransferHandler(eng, redisClient))
	payGroup.POST("/deposit", api.DepositHandler(eng, redisClient))
	payGroup.POST("/withdraw", api.WithdrawHandler(eng, redisClient))
	payGroup.GET("/transactions", api.HistoryHandler(eng, redisClient))

	// Bitcoin exchange
	btcGroup := r.Group("/bitcoin")
	btcGroup.Use(authed)
	btcGroup.GET("/price", api.PriceHandler(eng))
	btcGroup.GET("/wallet", api.WalletHandler(eng, redisClient))
	btcGroup.POST("/buy", api.BuyHandler(eng, redisClient))
	btcGroup.POST("/sell", api.SellHandler(eng, redisClient))
	btcGroup.GET("/trades", api.TradesHandler(eng))

	// Cards
	cardGroup := r.Group("/cards")
	cardGroup.Use(authed)
	cardGroup.POST("", api.AddCardHandler(eng))
	cardGroup.GET("", api.ListCardsHandler(eng))
	cardGroup.DELETE("/:id", api.RemoveCardHandler(eng))

	log.Println("Server running on " + cfg.AppPort)
	r.Run(":" + cfg.AppPort)
}
