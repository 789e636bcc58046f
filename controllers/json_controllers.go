package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type JSONController struct {
	Documents *services.DocumentService
	// BaseURL overrides the request-derived prefix of access URLs.
	BaseURL     string
	MaxUploadMB int64
}

func NewJSONController(documents *services.DocumentService, baseURL string, maxUploadMB int64) *JSONController {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &JSONController{Documents: documents, BaseURL: baseURL, MaxUploadMB: maxUploadMB}
}

func uploadFailed(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// UploadJSON -> POST /upload (multipart field "file")
func (jc *JSONController) UploadJSON(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, jc.MaxUploadMB<<20)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		uploadFailed(c, http.StatusBadRequest, "File is required")
		return
	}
	if fileHeader.Size == 0 {
		uploadFailed(c, http.StatusBadRequest, "File is empty")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorLogger.Printf("Error opening uploaded file %s: %v", fileHeader.Filename, err)
		uploadFailed(c, http.StatusInternalServerError, "Error reading file: "+err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		utils.ErrorLogger.Printf("Error reading uploaded file %s: %v", fileHeader.Filename, err)
		uploadFailed(c, http.StatusInternalServerError, "Error reading file: "+err.Error())
		return
	}

	doc, err := jc.Documents.Save(c.Request.Context(), fileHeader.Filename, string(content), utils.BaseURL(c, jc.BaseURL))
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			uploadFailed(c, http.StatusBadRequest, validationErr.Message)
			return
		}
		utils.ErrorLogger.Printf("Error saving JSON document %s: %v", fileHeader.Filename, err)
		uploadFailed(c, http.StatusInternalServerError, err.Error())
		return
	}

	utils.InfoLogger.Printf("JSON document %d uploaded (%s, %d bytes)", doc.ID, doc.Filename, len(content))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "File uploaded successfully",
		"id":        doc.ID,
		"filename":  doc.Filename,
		"accessUrl": doc.AccessURL,
		"createdAt": doc.CreatedAt,
	})
}

// GetJSON -> GET /json/:id, answers with the raw stored text
func (jc *JSONController) GetJSON(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidID)
		return
	}

	content, err := jc.Documents.Content(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": ErrDocumentNotFound.Error(),
				"id":    id,
			})
			return
		}
		utils.ErrorLogger.Printf("Error loading JSON document %d: %v", id, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "application/json", []byte(content))
}

// GetDocumentsInfo -> GET /documents
func (jc *JSONController) GetDocumentsInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Use POST /api/upload to upload JSON files",
		"usage":   fmt.Sprintf("After upload, access your JSON at the provided accessUrl (max %d MB per file)", jc.MaxUploadMB),
	})
}
