package main

import (
	"context"
	stdlog "log"

	"github.com/cleberrangel/burndown-api/internal/cache"
	"github.com/cleberrangel/burndown-api/internal/config"
	"github.com/cleberrangel/burndown-api/internal/database"
	"github.com/cleberrangel/burndown-api/internal/handler"
	"github.com/cleberrangel/burndown-api/internal/logger"
	"github.com/cleberrangel/burndown-api/internal/metrics"
	"github.com/cleberrangel/burndown-api/internal/middleware"
	"github.com/cleberrangel/burndown-api/internal/migration"
	"github.com/cleberrangel/burndown-api/internal/model"
	"github.com/cleberrangel/burndown-api/internal/repository"
	"github.com/cleberrangel/burndown-api/internal/service"
	"github.com/cleberrangel/burndown-api/internal/websocket"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

func main() {
	// Carrega configurações
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Inicializa logger estruturado
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Str("default_unit", cfg.DefaultUnit.String()).
		Str("default_day_policy", cfg.DefaultDayPolicy.String()).
		Msg("Burndown API iniciando")

	// Conecta ao banco e aplica migrações
	db, err := database.Connect(database.Config{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		DBName:       cfg.DBName,
		SSLMode:      cfg.DBSSLMode,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Erro ao conectar ao banco")
	}
	defer database.Close(db)

	if err := migration.NewMigrator(db).Run(); err != nil {
		log.Fatal().Err(err).Msg("Erro ao executar migrações")
	}

	// Repositórios (colaboradores do core de computação)
	milestoneRepo := repository.NewMilestoneRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	eventRepo := repository.NewStatusEventRepository(db)
	workLogRepo := repository.NewWorkLogRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Serviços
	tracker := service.NewTracker(eventRepo, workLogRepo, statusRepo)
	chartService := service.NewChartService(milestoneRepo, snapshotRepo, tracker)

	resolver := handler.NewOptionsResolver(settingsRepo, cfg.DefaultUnit, cfg.DefaultDayPolicy)
	chartCache := cache.New(cfg.ChartCacheTTL)
	defer chartCache.Stop()

	// Hub de gráficos ao vivo
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := websocket.NewHub(func(ctx context.Context, name string) (*model.ChartResponse, error) {
		return chartService.BuildChart(ctx, name, resolver.Defaults())
	}, cfg.WSRefreshInterval)
	go hub.Run(ctx)

	// Handlers
	chartHandler := handler.NewChartHandler(chartService, milestoneRepo, resolver, chartCache)
	adminHandler := handler.NewAdminHandler(settingsRepo, resolver, chartCache)
	wsHandler := handler.NewWebSocketHandler(hub, chartService, resolver)
	healthHandler := handler.NewHealthHandler(db, hub, Version)

	// Configura modo do Gin
	gin.SetMode(cfg.GinMode)

	metrics.Init()

	r := gin.New()
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.Recovery())

	// Health check (público)
	r.GET("/health", healthHandler.Health)

	// Gráfico ao vivo via websocket
	r.GET("/ws/milestones/:name", wsHandler.Subscribe)

	// Grupo de rotas protegidas
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	}))
	api.Use(middleware.BearerAuth(middleware.AuthConfig{
		TokenAPI: cfg.TokenAPI,
	}))
	{
		api.GET("/milestones", chartHandler.ListMilestones)
		api.GET("/milestones/:name/burndown", chartHandler.GetBurndown)
		api.GET("/milestones/:name/burndown/export", chartHandler.ExportBurndown)
		api.GET("/metrics", healthHandler.Metrics)
	}

	// Painel administrativo (basic auth com bcrypt)
	if cfg.AdminUser != "" && cfg.AdminPasswordHash != "" {
		admin := r.Group("/admin")
		admin.Use(middleware.BasicAuth(middleware.BasicAuthConfig{
			Username:     cfg.AdminUser,
			PasswordHash: cfg.AdminPasswordHash,
		}))
		{
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
		}
	} else {
		log.Warn().Msg("ADMIN_USER/ADMIN_PASSWORD_HASH não configurados, painel administrativo desabilitado")
	}

	// Inicia servidor
	log.Info().Str("port", cfg.Port).Msg("Servidor iniciando")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Erro ao iniciar servidor")
	}
}
