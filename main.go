package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/router"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
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
	utils.SetLogLevel(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DB)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	autoMigrate(db)

	clk := clock.New()
	tables := services.NewTableStore(clk)
	bookings := services.NewBookingStore(clk)
	if cfg.SeedData {
		services.SeedMockData(tables, bookings, clk.Now())
	}

	hub := live.NewHub(utils.InfoLogger)

	registry := prometheus.NewRegistry()
	monitor := services.NewBookingMonitor(bookings, tables, registry)
	monitor.Interval = cfg.MetricsInterval
	monitor.OnRefresh = func(stats services.BookingStatistics) {
		hub.Broadcast(live.Message{Event: live.EventStatisticsUpdate, Data: stats})
	}
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(router.Deps{
		Config:    cfg,
		Tables:    tables,
		Bookings:  bookings,
		Documents: services.NewDocumentService(db),
		Hub:       hub,
		Gatherer:  registry,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.InfoLogger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(&models.JSONDocument{}); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
