package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/config"
	"github.com/oreumshop/commerce-api/internal/handler"
	"github.com/oreumshop/commerce-api/internal/middleware"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/internal/service"
	"github.com/oreumshop/commerce-api/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	workRepo := repository.NewWorkRepository(db)
	chatRepo := repository.NewChatRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryEnabled {
		s, err := storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
		imageStorage = s
	} else {
		log.Println("CLOUDINARY_URL not set, review image uploads disabled")
	}

	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient := meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewMeiliSearchService(meiliClient)
	} else {
		log.Println("MEILISEARCH_HOST not set, work search uses SQL fallback")
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTLMinutes)
	authHandler := handler.NewAuthHandler(authSvc)

	adminSvc := service.NewAdminService(userRepo)
	adminHandler := handler.NewAdminHandler(adminSvc)

	orderSvc := service.NewOrderService(orderRepo)
	orderHandler := handler.NewOrderHandler(orderSvc)

	likeSvc := service.NewLikeService(likeRepo, orderRepo, reviewRepo, redisClient, cfg.RateLimitLike)
	likeHandler := handler.NewLikeHandler(likeSvc)

	workSvc := service.NewWorkService(workRepo, orderRepo, userRepo, searchSvc)
	workHandler := handler.NewWorkHandler(workSvc)

	chatSvc := service.NewChatService(chatRepo, redisClient, cfg.RateLimitChat)
	chatHandler := handler.NewChatHandler(chatSvc)

	reviewSvc := service.NewReviewService(reviewRepo, orderRepo, imageStorage)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireStaff())
		{
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeactivateUser)
		}

		// Order routes
		protected.POST("/orders", orderHandler.Create)
		protected.GET("/orders", orderHandler.List)
		protected.GET("/orders/:id", orderHandler.Get)
		protected.PATCH("/orders/:id", orderHandler.Update)
		protected.DELETE("/orders/:id", orderHandler.Delete)

		// Like routes
		protected.POST("/likes", likeHandler.Create)
		protected.GET("/likes", likeHandler.List)
		protected.DELETE("/likes/:id", likeHandler.Delete)

		// Work routes
		protected.POST("/works", workHandler.Create)
		protected.GET("/works", workHandler.List)
		protected.GET("/works/:id", workHandler.Get)
		protected.PUT("/works/:id", workHandler.Update)
		protected.PATCH("/works/:id", workHandler.Update)
		protected.DELETE("/works/:id", workHandler.Delete)

		// Chat routes
		protected.POST("/chat/rooms", chatHandler.CreateRoom)
		protected.GET("/chat/rooms", chatHandler.ListRooms)
		protected.GET("/chat/rooms/:id/messages", chatHandler.ListMessages)
		protected.POST("/chat/rooms/:id/messages", chatHandler.SendMessage)
		protected.POST("/chat/rooms/:id/read", chatHandler.MarkRead)
		protected.GET("/chat/rooms/:id/stream", chatHandler.Stream)

		// Review routes
		protected.POST("/reviews", reviewHandler.Create)
		protected.GET("/reviews", reviewHandler.List)
		protected.GET("/reviews/:id", reviewHandler.Get)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
