package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"sharecalc/config"
	"sharecalc/handlers"
	"sharecalc/middleware"
	"sharecalc/services"
	"sharecalc/utils"
)

func main() {
	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rates, err := config.LoadRateTable(cfg.Rates.SchedulePath, cfg.Rates)
	if err != nil {
		log.Fatalf("Failed to load rate schedule: %v", err)
	}

	log.Println("=== Configuration ===")
	log.Printf("Server: %s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Rate schedule: %s", rates.Version)
	if msg := utils.GetScheduleMessage(rates.Version, cfg.ScheduleVersionConfig()); msg != "" {
		log.Printf("⚠️  %s", msg)
	}

	// 2. Core Services
	geo, err := utils.NewGeoResolver(cfg.GeoIP.DBPath)
	if err != nil {
		log.Printf("⚠️  GeoIP DB not found at %s: %v", cfg.GeoIP.DBPath, err)
	}
	defer geo.Close()

	mongoService, err := services.NewMongoDBService(cfg)
	if err != nil {
		log.Printf("⚠️  MongoDB connection failed: %v", err)
		log.Println("Saved scenarios will not survive a restart")
		mongoService = nil
	}
	if mongoService != nil {
		defer mongoService.Close()
	}

	cache := services.NewCacheService(cfg)
	calculatorService := services.NewCalculatorService(rates, cache, cfg.CacheTTLDuration())
	comparisonService := services.NewComparisonService(calculatorService, cfg.Comparison)

	discordBot, err := services.NewDiscordBotService(cfg.Discord.Token, cfg.Discord.ChannelID, calculatorService)
	if err != nil {
		log.Printf("⚠️  Discord bot initialization failed: %v", err)
		log.Println("Discord sharing will be disabled")
		discordBot = nil
	} else if discordBot.Enabled() {
		defer discordBot.Close()
		log.Println("✓ Discord Bot connected")
	}

	scenarioService := services.NewScenarioService(calculatorService, mongoService, discordBot)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := scenarioService.LoadScenariosFromDB(ctx); err != nil {
		log.Printf("Warning: Failed to load scenarios from MongoDB: %v", err)
	}
	cancel()

	cache.Start()
	log.Printf("✓ Cache Service started (mode: %s)", cache.GetCacheMode())

	// 3. Web Server Setup
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerMiddleware())
	e.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	e.Use(middleware.RecoverMiddleware())
	e.Use(middleware.RateLimiterMiddleware(cfg.Server.RateLimit, cfg.Server.RateBurst))

	// 4. Handlers
	systemHandlers := handlers.NewSystemHandlers(cache, scenarioService)
	calculatorHandlers := handlers.NewCalculatorHandlers(cfg, calculatorService, comparisonService, geo)
	scenarioHandlers := handlers.NewScenarioHandlers(scenarioService)
	cacheHandlers := handlers.NewCacheHandlers(cache)

	// 5. Routes
	e.GET("/health", systemHandlers.GetHealth)
	e.GET("/cache/status", cacheHandlers.GetCacheStatus)
	e.POST("/cache/clear", cacheHandlers.ClearCache)

	api := e.Group("/api")
	api.GET("/status", systemHandlers.GetStatus)
	api.GET("/rates", calculatorHandlers.GetRates)

	plan := api.Group("/plan")
	plan.POST("", calculatorHandlers.ComputePlan)
	plan.POST("/compare", calculatorHandlers.ComparePlan)
	plan.POST("/export.csv", calculatorHandlers.ExportPlanCSV)

	api.POST("/condo", calculatorHandlers.ComputeCondo)

	scenarios := api.Group("/scenarios")
	scenarios.POST("", scenarioHandlers.CreateScenario)
	scenarios.GET("", scenarioHandlers.ListScenarios)
	scenarios.GET("/stats", scenarioHandlers.GetScenarioStats)
	scenarios.GET("/:id", scenarioHandlers.GetScenario)
	scenarios.PUT("/:id", scenarioHandlers.UpdateScenario)
	scenarios.DELETE("/:id", scenarioHandlers.DeleteScenario)

	// 6. Start HTTP Server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		log.Printf("🚀 Server running on http://%s", serverAddr)
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("shutting down the server: %v", err)
		}
	}()

	// 7. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Graceful shutdown initiated...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	cache.Stop()
	log.Println("✓ All services stopped")

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
	log.Println("✓ Server exited cleanly")
}
