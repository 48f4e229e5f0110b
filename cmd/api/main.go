package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"gatorkeys/config"
	"gatorkeys/internal/chat"
	chatHandler "gatorkeys/internal/chat/handler"
	chatPostgres "gatorkeys/internal/chat/repository/postgres"
	chatRedis "gatorkeys/internal/chat/repository/redisstore"
	chatUsecase "gatorkeys/internal/chat/usecase"
	listingHandler "gatorkeys/internal/listing/handler"
	listingRepository "gatorkeys/internal/listing/repository"
	listingUsecase "gatorkeys/internal/listing/usecase"
	"gatorkeys/internal/middleware"
	userHandler "gatorkeys/internal/user/handler"
	userRepository "gatorkeys/internal/user/repository"
	userUsecase "gatorkeys/internal/user/usecase"
	"gatorkeys/internal/ws"
	"gatorkeys/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// postgres: users and listings always live here; messages too unless
	// the redis store variant is selected
	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN))
	sqlDB := sql.OpenDB(connector)
	db := bun.NewDB(sqlDB, pgdialect.New())
	if err := sqlDB.Ping(); err != nil {
		appLogger.Fatalf("failed to ping postgres: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	userRepo := userRepository.NewUserRepository(db, *appLogger)
	listingRepo := listingRepository.NewListingRepository(db, *appLogger)

	var msgRepo chat.MessageRepository
	var threadRepo chat.ThreadRepository
	switch cfg.Store.Driver {
	case "redis":
		appLogger.Info("using redis message store (no thread support)")
		msgRepo = chatRedis.NewMessageRepository(rdb, *appLogger)
	default:
		pg := chatPostgres.NewChatRepository(db, *appLogger)
		msgRepo = pg
		threadRepo = pg
	}

	userUC := userUsecase.NewUserUsecase(userRepo, *appLogger, *cfg)
	listingUC := listingUsecase.NewListingUsecase(listingRepo, *appLogger)
	chatUC := chatUsecase.NewChatUsecase(msgRepo, threadRepo, *appLogger)

	hub := ws.NewHub(rdb, *appLogger)

	userH := userHandler.NewUserHandler(userUC)
	listingH := listingHandler.NewListingHandler(listingUC)
	chatH := chatHandler.NewChatHandler(chatUC, hub)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/auth/register", userH.Register)
	r.POST("/auth/login", userH.Login)
	r.GET("/listings", listingH.List)
	r.GET("/listings/:id", listingH.Get)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(*cfg))
	api.GET("/auth/me", userH.Me)

	api.POST("/listings", listingH.Create)
	api.PUT("/listings/:id", listingH.Update)
	api.DELETE("/listings/:id", listingH.Delete)

	api.POST("/messages", chatH.SendMessage)
	api.GET("/conversations", chatH.ListConversations)
	api.GET("/conversations/:otherID/messages", chatH.GetConversation)
	api.POST("/conversations/:otherID/read", chatH.MarkRead)
	api.POST("/threads", chatH.ResolveThread)
	api.GET("/threads", chatH.ListThreads)
	api.GET("/threads/:id/messages", chatH.ListThreadMessages)

	r.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(hub, chatUC, *cfg, c)
	})

	appLogger.Info("starting server", "port", cfg.Server.Port, "store", cfg.Store.Driver)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		appLogger.Fatalf("server failed: %v", err)
	}
}
