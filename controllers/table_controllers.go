package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/live"
	"github.com/yeremiapane/table-booking/models"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type TableController struct {
	Tables *services.TableStore
	Live   live.Publisher
}

func NewTableController(tables *services.TableStore, publisher live.Publisher) *TableController {
	return &TableController{Tables: tables, Live: publisher}
}

type tableRequest struct {
	Name         string  `json:"name" binding:"required"`
	Capacity     int     `json:"capacity" binding:"required,gt=0"`
	Location     string  `json:"location"`
	Description  string  `json:"description"`
	IsAvailable  *bool   `json:"isAvailable"`
	PricePerHour float64 `json:"pricePerHour" binding:"gte=0"`
}

// toModel starts from a new, available table and applies the request on top.
func (r tableRequest) toModel() models.Table {
	table := models.NewTable(r.Name, r.Capacity, r.Location, r.Description, r.PricePerHour)
	if r.IsAvailable != nil {
		table.IsAvailable = *r.IsAvailable
	}
	return table
}

// GetAllTables -> GET /tables
func (tc *TableController) GetAllTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of tables", tc.Tables.List())
}

// GetTableByID -> GET /tables/:id
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	table, err := tc.Tables.Get(id)
	if err != nil {
		respondServiceError(c, err, ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetAvailableTables -> GET /tables/available
func (tc *TableController) GetAvailableTables(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Available tables", tc.Tables.Available())
}

// GetTablesByCapacity -> GET /tables/capacity/:min
func (tc *TableController) GetTablesByCapacity(c *gin.Context) {
	minCapacity, err := strconv.Atoi(c.Param("min"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid minimum capacity"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with capacity >= "+strconv.Itoa(minCapacity), tc.Tables.ByMinCapacity(minCapacity))
}

// GetTablesByLocation -> GET /tables/location?location=
func (tc *TableController) GetTablesByLocation(c *gin.Context) {
	location, ok := c.GetQuery("location")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'location' is required"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables in location: "+location, tc.Tables.ByLocation(location))
}

// CreateTable -> POST /tables
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := tc.Tables.Create(req.toModel())
	tc.Live.Broadcast(live.Message{Event: live.EventTableCreate, Data: table})

	utils.InfoLogger.Printf("New table created: %s (id=%d, capacity=%d)", table.Name, table.ID, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> PUT /tables/:id
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Update(id, req.toModel())
	if err != nil {
		respondServiceError(c, err, ErrTableNotFound)
		return
	}
	tc.Live.Broadcast(live.Message{Event: live.EventTableUpdate, Data: table})

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// ToggleTableAvailability -> PATCH /tables/:id/availability
func (tc *TableController) ToggleTableAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	table, err := tc.Tables.ToggleAvailability(id)
	if err != nil {
		respondServiceError(c, err, ErrTableNotFound)
		return
	}
	tc.Live.Broadcast(live.Message{Event: live.EventTableUpdate, Data: table})

	utils.InfoLogger.Printf("Table %d availability changed to %t", table.ID, table.IsAvailable)
	utils.RespondJSON(c, http.StatusOK, "Table availability toggled successfully", table)
}

// DeleteTable -> DELETE /tables/:id
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !tc.Tables.Delete(id) {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}
	tc.Live.Broadcast(live.Message{Event: live.EventTableDelete, Data: gin.H{"id": id}})

	utils.InfoLogger.Printf("Table %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", gin.H{"id": id})
}
