package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"makemeshort/internal/middleware"
	"makemeshort/internal/models"
	"makemeshort/internal/service"

	"github.com/gin-gonic/gin"
)

type ShortenerController struct {
	urlService service.URLService
}

func NewShortenerController(urlService service.URLService) *ShortenerController {
	return &ShortenerController{urlService: urlService}
}

func optionalHeader(c *gin.Context, name string) *string {
	if v := c.GetHeader(name); v != "" {
		return &v
	}
	return nil
}

// CreateShortURL handles POST /api/shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
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

	response, err := sc.urlService.CreateShortURL(&req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RedirectToURL handles GET /r/:code - the public redirect
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	code := c.Param("code")

	visit := service.Visit{
		IP:        c.ClientIP(),
		UserAgent: optionalHeader(c, "User-Agent"),
		Referrer:  optionalHeader(c, "Referer"),
	}

	originalURL, err := sc.urlService.ResolveRedirect(code, visit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"error": "This URL has expired"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Short URL not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Redirect(http.StatusFound, originalURL)
}

// ListURLs handles GET /api/urls?search=&owned_only=
func (sc *ShortenerController) ListURLs(c *gin.Context) {
	ownedOnly, _ := strconv.ParseBool(c.Query("owned_only"))

	var currentUserID *string
	if id, ok := middleware.CallerUserID(c); ok {
		currentUserID = &id
	}

	urls, err := sc.urlService.ListURLs(c.Query("search"), ownedOnly, currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, urls)
}

// ListUserURLs handles GET /api/users/:user_id/urls (ownership-gated)
func (sc *ShortenerController) ListUserURLs(c *gin.Context) {
	userID := c.Param("user_id")

	var currentUserID *string
	if id, ok := middleware.CallerUserID(c); ok {
		currentUserID = &id
	}

	urls, err := sc.urlService.ListUserURLs(userID, c.Query("search"), currentUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, urls)
}

// DeleteURL handles DELETE /api/urls/:code - owner-only, cascades best-effort
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	code := c.Param("code")

	callerID, ok := middleware.CallerUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	if err := sc.urlService.DeleteURL(code, callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this URL"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAnalytics handles GET /api/analytics/:code
func (sc *ShortenerController) GetAnalytics(c *gin.Context) {
	code := c.Param("code")

	analytics, err := sc.urlService.GetAnalytics(code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "URL not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
