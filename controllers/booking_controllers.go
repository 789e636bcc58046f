package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type BookingController struct {
	Bookings *services.BookingStore
	Live     live.Publisher
}

func NewBookingController(bookings *services.BookingStore, publisher live.Publisher) *BookingController {
	return &BookingController{Bookings: bookings, Live: publisher}
}

type bookingRequest struct {
	TableID         int64          `json:"tableId" binding:"required"`
	CustomerName    string         `json:"customerName" binding:"required"`
	CustomerEmail   string         `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string         `json:"customerPhone"`
	PartySize       int            `json:"partySize" binding:"required,gt=0"`
	BookingDateTime utils.DateTime `json:"bookingDateTime"`
	DurationHours   int            `json:"durationHours" binding:"gte=0,lte=24"`
	SpecialRequests string         `json:"specialRequests"`
	Status          string         `json:"status"`
}

func (r bookingRequest) toModel() (models.Booking, error) {
	if r.BookingDateTime.IsZero() {
		return models.Booking{}, errors.New("bookingDateTime is required")
	}
	booking := models.Booking{
		TableID:         r.TableID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		PartySize:       r.PartySize,
		BookingDateTime: r.BookingDateTime.Time,
		DurationHours:   r.DurationHours,
		SpecialRequests: r.SpecialRequests,
	}
	if r.Status != "" {
		status, err := models.ParseBookingStatus(r.Status)
		if err != nil {
			return models.Booking{}, err
		}
		booking.Status = status
	}
	return booking, nil
}

func (bc *BookingController) bindBooking(c *gin.Context) (models.Booking, bool) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return models.Booking{}, false
	}
	booking, err := req.toModel()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return models.Booking{}, false
	}
	return booking, true
}

// publish sends a booking event together with the refreshed statistics.
func (bc *BookingController) publish(event string, data interface{}) {
	bc.Live.Broadcast(live.Message{
		Event: event,
		Data: gin.H{
			"booking":    data,
			"statistics": bc.Bookings.Statistics(),
		},
	})
}

// GetAllBookings -> GET /bookings
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bc.Bookings.List())
}

// GetBookingByID -> GET /bookings/:id
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(id)
	if err != nil {
		respondServiceError(c, err, ErrBookingNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetBookingsByStatus -> GET /bookings/status/:status
func (bc *BookingController) GetBookingsByStatus(c *gin.Context) {
	status, err := models.ParseBookingStatus(c.Param("status"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings with status: "+string(status), bc.Bookings.ByStatus(status))
}

// GetBookingsByTable -> GET /bookings/table/:tableId
func (bc *BookingController) GetBookingsByTable(c *gin.Context) {
	tableID, ok := parseIDParam(c, "tableId")
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings for table "+strconv.FormatInt(tableID, 10), bc.Bookings.ByTable(tableID))
}

// GetBookingsByCustomerEmail -> GET /bookings/customer?email=
func (bc *BookingController) GetBookingsByCustomerEmail(c *gin.Context) {
	email, ok := c.GetQuery("email")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'email' is required"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings for customer: "+email, bc.Bookings.ByCustomerEmail(email))
}

// GetBookingsByDateRange -> GET /bookings/date-range?startDate=&endDate=
func (bc *BookingController) GetBookingsByDateRange(c *gin.Context) {
	start, err := utils.ParseDateTime(c.Query("startDate"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or missing startDate"))
		return
	}
	end, err := utils.ParseDateTime(c.Query("endDate"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or missing endDate"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings in date range", bc.Bookings.ByDateRange(start, end))
}

// GetTodaysBookings -> GET /bookings/today
func (bc *BookingController) GetTodaysBookings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Today's bookings", bc.Bookings.Today())
}

// GetBookingStatistics -> GET /bookings/statistics
func (bc *BookingController) GetBookingStatistics(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Booking statistics", bc.Bookings.Statistics())
}

// CheckTableAvailability -> GET /bookings/availability?tableId=&bookingDateTime=&durationHours=
func (bc *BookingController) CheckTableAvailability(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Query("tableId"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or missing tableId"))
		return
	}
	start, err := utils.ParseDateTime(c.Query("bookingDateTime"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid or missing bookingDateTime"))
		return
	}
	duration, err := strconv.Atoi(c.Query("durationHours"))
	if err != nil || duration <= 0 || duration > models.MaxDurationHours {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("durationHours must be between 1 and %d", models.MaxDurationHours))
		return
	}

	available := bc.Bookings.IsTableAvailable(tableID, start, duration)
	utils.RespondJSON(c, http.StatusOK, "Table availability", available)
}

// CreateBooking -> POST /bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	booking, ok := bc.bindBooking(c)
	if !ok {
		return
	}

	created := bc.Bookings.Create(booking)
	bc.publish(live.EventBookingCreate, created)

	utils.InfoLogger.Printf("New booking created (ID=%d) at TableID=%d for %s", created.ID, created.TableID, created.BookingDateTime.Format("2006-01-02 15:04"))
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", created)
}

// UpdateBooking -> PUT /bookings/:id
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, ok := bc.bindBooking(c)
	if !ok {
		return
	}

	updated, err := bc.Bookings.Update(id, booking)
	if err != nil {
		respondServiceError(c, err, ErrBookingNotFound)
		return
	}
	bc.publish(live.EventBookingUpdate, updated)

	utils.InfoLogger.Printf("Booking %d updated", updated.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking updated successfully", updated)
}

// UpdateBookingStatus -> PATCH /bookings/:id/status?status=
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := models.ParseBookingStatus(c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated, err := bc.Bookings.UpdateStatus(id, status)
	if err != nil {
		respondServiceError(c, err, ErrBookingNotFound)
		return
	}
	bc.publish(live.EventBookingStatus, updated)

	utils.InfoLogger.Printf("Booking %d status changed to %s", updated.ID, updated.Status)
	utils.RespondJSON(c, http.StatusOK, "Booking status updated", updated)
}

// DeleteBooking -> DELETE /bookings/:id
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.Bookings.Delete(id) {
		utils.RespondError(c, http.StatusNotFound, ErrBookingNotFound)
		return
	}
	bc.publish(live.EventBookingDelete, gin.H{"id": id})

	utils.InfoLogger.Printf("Booking %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Booking deleted successfully", gin.H{"id": id})
}
