package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/controllers"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/middlewares"
	"github.com/yeremiapane/table-booking/services"
)

// Deps are the long-lived objects the HTTP layer serves from.
type Deps struct {
	Config    *config.Config
	Tables    *services.TableStore
	Bookings  *services.BookingStore
	Documents *services.DocumentService
	Hub       *live.Hub
	// Gatherer backs GET /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
}

func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigins))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	tableCtrl := controllers.NewTableController(deps.Tables, deps.Hub)
	bookingCtrl := controllers.NewBookingController(deps.Bookings, deps.Hub)
	jsonCtrl := controllers.NewJSONController(deps.Documents, cfg.BaseURL, cfg.MaxUploadMB)
	liveCtrl := controllers.NewLiveController(deps.Hub, cfg.AllowedOrigins)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")

	// TABLES
	api.GET("/tables", tableCtrl.GetAllTables)
	api.GET("/tables/available", tableCtrl.GetAvailableTables)
	api.GET("/tables/capacity/:min", tableCtrl.GetTablesByCapacity)
	api.GET("/tables/location", tableCtrl.GetTablesByLocation)
	api.GET("/tables/:id", tableCtrl.GetTableByID)
	api.POST("/tables", tableCtrl.CreateTable)
	api.PUT("/tables/:id", tableCtrl.UpdateTable)
	api.PATCH("/tables/:id/availability", tableCtrl.ToggleTableAvailability)
	api.DELETE("/tables/:id", tableCtrl.DeleteTable)

	// BOOKINGS
	api.GET("/bookings", bookingCtrl.GetAllBookings)
	api.GET("/bookings/status/:status", bookingCtrl.GetBookingsByStatus)
	api.GET("/bookings/table/:tableId", bookingCtrl.GetBookingsByTable)
	api.GET("/bookings/customer", bookingCtrl.GetBookingsByCustomerEmail)
	api.GET("/bookings/date-range", bookingCtrl.GetBookingsByDateRange)
	api.GET("/bookings/today", bookingCtrl.GetTodaysBookings)
	api.GET("/bookings/statistics", bookingCtrl.GetBookingStatistics)
	api.GET("/bookings/availability", bookingCtrl.CheckTableAvailability)
	api.GET("/bookings/:id", bookingCtrl.GetBookingByID)
	api.POST("/bookings", bookingCtrl.CreateBooking)
	api.PUT("/bookings/:id", bookingCtrl.UpdateBooking)
	api.PATCH("/bookings/:id/status", bookingCtrl.UpdateBookingStatus)
	api.DELETE("/bookings/:id", bookingCtrl.DeleteBooking)

	// JSON DOCUMENTS
	api.POST("/upload", jsonCtrl.UploadJSON)
	api.GET("/json/:id", jsonCtrl.GetJSON)
	api.GET("/documents", jsonCtrl.GetDocumentsInfo)

	// LIVE UPDATES
	api.GET("/ws", liveCtrl.Serve)

	return r
}
