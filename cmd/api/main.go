package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/accounts-backend/docs"
	"github.com/rafabene/accounts-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/accounts-backend/internal/handlers/http"
	"github.com/rafabene/accounts-backend/internal/handlers/middleware"
	"github.com/rafabene/accounts-backend/internal/handlers/ws"
	"github.com/rafabene/accounts-backend/internal/infrastructure/auth"
	"github.com/rafabene/accounts-backend/internal/infrastructure/config"
	"github.com/rafabene/accounts-backend/internal/infrastructure/i18n"
	"github.com/rafabene/accounts-backend/internal/infrastructure/logging"
	"github.com/rafabene/accounts-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/accounts-backend/internal/services"
)

// @title       Accounts Backend API
// @version     1.0
// @description User account service: registration, login, profile lookup and name-change audit history.
// @BasePath    /
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting accounts backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Validações customizadas do binding
	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	infoRepo := postgres.NewUserInfoRepository(db)
	historyRepo := postgres.NewUserHistoryRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Hub de eventos de auditoria (websocket)
	hub := ws.NewHub(logger)
	defer hub.Close()

	// Inicializar services
	tokens := auth.NewTokenManager(cfg.JWT.Secret)
	accountService := services.NewAccountService(userRepo, infoRepo, historyRepo, uow, hub, logger)
	authService := services.NewAuthService(userRepo, tokens, logger)

	// Inicializar handlers
	userHandler := httphandlers.NewUserHandler(accountService)
	authHandler := httphandlers.NewAuthHandler(authService)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware de correlação de requisições
	router.Use(middleware.RequestID())

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Accept-Language")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Rotas do serviço (caminhos do contrato, sem prefixo)
	router.POST("/users", userHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/users/:userId", userHandler.GetUser)
	router.GET("/users/:userId/histories", userHandler.ListHistories)
	router.PUT("/users/name", authMiddleware.RequireAuth(), userHandler.ChangeName)

	// Feed websocket de eventos de auditoria
	router.GET("/ws/histories", hub.Handle)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
