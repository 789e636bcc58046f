package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/table-booking/config"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/router"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testApp struct {
	router   *gin.Engine
	monitor  *services.BookingMonitor
	bookings *services.BookingStore
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.JSONDocument{}))

	clk := clock.NewMock()
	clk.Set(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))

	tables := services.NewTableStore(clk)
	bookings := services.NewBookingStore(clk)
	registry := prometheus.NewRegistry()
	monitor := services.NewBookingMonitor(bookings, tables, registry)

	cfg := &config.Config{
		AllowedOrigins: []string{"http://localhost:4200"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxUploadMB:    1,
	}

	r := router.SetupRouter(router.Deps{
		Config:    cfg,
		Tables:    tables,
		Bookings:  bookings,
		Documents: services.NewDocumentService(db),
		Hub:       live.NewHub(utils.InfoLogger),
		Gatherer:  registry,
	})
	return &testApp{router: r, monitor: monitor, bookings: bookings}
}

func (a *testApp) do(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	if payload != nil {
		require.NoError(t, json.NewEncoder(body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// TestEndToEndIntegration walks the main flow:
// create table, book it, check availability and statistics, upload a JSON
// document, fetch it back and scrape the metrics endpoint.
func TestEndToEndIntegration(t *testing.T) {
	app := setupTestApp(t)

	tableID := createTableTest(t, app)
	bookingID := createBookingTest(t, app, tableID)

	checkAvailabilityTest(t, app, tableID)
	confirmBookingTest(t, app, bookingID)
	checkStatisticsTest(t, app)

	docURL := uploadDocumentTest(t, app)
	fetchDocumentTest(t, app, docURL)

	scrapeMetricsTest(t, app)
}

func createTableTest(t *testing.T, app *testApp) int64 {
	code, resp := app.do(t, "POST", "/api/tables", map[string]interface{}{
		"name":         "Table 1",
		"capacity":     4,
		"location":     "Main Hall",
		"pricePerHour": 25.0,
	})
	require.Equal(t, http.StatusCreated, code, resp)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["isAvailable"])
	return int64(data["id"].(float64))
}

func createBookingTest(t *testing.T, app *testApp, tableID int64) int64 {
	code, resp := app.do(t, "POST", "/api/bookings", map[string]interface{}{
		"tableId":         tableID,
		"customerName":    "John Doe",
		"customerEmail":   "john.doe@email.com",
		"customerPhone":   "+1-555-0101",
		"partySize":       4,
		"bookingDateTime": "2024-01-01T19:00:00",
	})
	require.Equal(t, http.StatusCreated, code, resp)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, float64(2), data["durationHours"])
	return int64(data["id"].(float64))
}

func checkAvailabilityTest(t *testing.T, app *testApp, tableID int64) {
	base := "/api/bookings/availability?tableId=" + strconv.FormatInt(tableID, 10) + "&durationHours=2&bookingDateTime="

	code, resp := app.do(t, "GET", base+"2024-01-01T20:00:00", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, resp["data"])

	code, resp = app.do(t, "GET", base+"2024-01-01T21:00:00", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["data"])
}

func confirmBookingTest(t *testing.T, app *testApp, bookingID int64) {
	code, resp := app.do(t, "PATCH", "/api/bookings/"+strconv.FormatInt(bookingID, 10)+"/status?status=confirmed", nil)
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, "CONFIRMED", resp["data"].(map[string]interface{})["status"])
}

func checkStatisticsTest(t *testing.T, app *testApp) {
	code, resp := app.do(t, "GET", "/api/bookings/statistics", nil)
	require.Equal(t, http.StatusOK, code)

	stats := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalBookings"])
	assert.Equal(t, float64(1), stats["confirmedBookings"])
	assert.Equal(t, float64(1), stats["todaysBookings"])
	assert.Equal(t, float64(100), stats["confirmationRate"])
}

func uploadDocumentTest(t *testing.T, app *testApp) string {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "layout.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`{"floor":"Main Hall","tables":8}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/api/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Host = "localhost:8080"

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "layout.json", resp["filename"])

	accessURL := resp["accessUrl"].(string)
	assert.Equal(t, "http://localhost:8080/api/json/"+strconv.Itoa(int(resp["id"].(float64))), accessURL)
	return accessURL
}

func fetchDocumentTest(t *testing.T, app *testApp, accessURL string) {
	path := accessURL[len("http://localhost:8080"):]
	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, `{"floor":"Main Hall","tables":8}`, w.Body.String())
}

func scrapeMetricsTest(t *testing.T, app *testApp) {
	app.monitor.Refresh()

	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	out, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `table_booking_bookings{status="CONFIRMED"} 1`)
	assert.Contains(t, string(out), "table_booking_bookings_today 1")
	assert.Contains(t, string(out), `table_booking_tables{availability="available"} 1`)
}

func TestPingAndUnknownRoute(t *testing.T) {
	app := setupTestApp(t)

	code, resp := app.do(t, "GET", "/ping", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", resp["message"])

	req, err := http.NewRequest("GET", "/api/nope", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
