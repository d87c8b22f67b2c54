package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"makemeshort/internal/entities"
	"makemeshort/internal/middleware"
	"makemeshort/internal/models"
	"makemeshort/internal/repository"
	"makemeshort/internal/service"

	"github.com/gin-gonic/gin"
)

const svgContentType = "image/svg+xml"

type QRCodeController struct {
	qrService service.QRService
}

func NewQRCodeController(qrService service.QRService) *QRCodeController {
	return &QRCodeController{qrService: qrService}
}

// Regenerate handles GET /api/qr/:code/regenerate?type=&force=
// Returns the cached SVG unless force is set, rendering on first use.
func (qc *QRCodeController) Regenerate(c *gin.Context) {
	code := c.Param("code")
	targetType := entities.NormalizeTargetType(c.Query("type"))
	force, _ := strconv.ParseBool(c.Query("force"))

	svg, err := qc.qrService.GenerateForCode(code, targetType, force)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		case errors.Is(err, service.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"error": "This QR code has expired"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

// GetCached handles GET /api/qr/:code/info?type= - cached SVG only, no
// generation
func (qc *QRCodeController) GetCached(c *gin.Context) {
	code := c.Param("code")
	targetType := entities.NormalizeTargetType(c.Query("type"))

	svg, err := qc.qrService.GetCached(code, targetType)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "QR code not found for this URL"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

// GenerateDirect handles POST /api/qr - QR straight from a URL, no short code
func (qc *QRCodeController) GenerateDirect(c *gin.Context) {
	var req models.CreateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var userID *string
	if id, ok := middleware.CallerUserID(c); ok {
		userID = &id
	}

	svg, err := qc.qrService.GenerateDirect(&req, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

func (qc *QRCodeController) searchParams(c *gin.Context) repository.QRSearch {
	directOnly, _ := strconv.ParseBool(c.Query("direct_only"))
	return repository.QRSearch{
		Search:     c.Query("search"),
		TargetType: c.Query("type"),
		DirectOnly: directOnly,
	}
}

// List handles GET /api/qr?search=&type=&direct_only=&owned_only=
func (qc *QRCodeController) List(c *gin.Context) {
	params := qc.searchParams(c)

	var currentUserID *string
	if id, ok := middleware.CallerUserID(c); ok {
		currentUserID = &id
	}

	if ownedOnly, _ := strconv.ParseBool(c.Query("owned_only")); ownedOnly {
		params.UserID = currentUserID
	}

	qrs, err := qc.qrService.List(params, currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, qrs)
}

// ListUserQRCodes handles GET /api/users/:user_id/qr (ownership-gated)
func (qc *QRCodeController) ListUserQRCodes(c *gin.Context) {
	userID := c.Param("user_id")

	params := qc.searchParams(c)
	params.UserID = &userID

	var currentUserID *string
	if id, ok := middleware.CallerUserID(c); ok {
		currentUserID = &id
	}

	qrs, err := qc.qrService.List(params, currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, qrs)
}
