package controllers

import (
	"errors"
	"net/http"

	"makemeshort/internal/middleware"
	"makemeshort/internal/models"
	"makemeshort/internal/service"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// List handles GET /api/users - everyone but the caller
func (uc *UserController) List(c *gin.Context) {
	callerID, ok := middleware.CallerUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	users, err := uc.userService.List(callerID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:user_id
func (uc *UserController) Get(c *gin.Context) {
	user, err := uc.userService.Get(c.Param("user_id"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Create handles POST /api/users
func (uc *UserController) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := uc.userService.Create(&req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Edit handles PUT /api/users/:user_id - partial edit
func (uc *UserController) Edit(c *gin.Context) {
	var req models.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := uc.userService.Edit(c.Param("user_id"), &req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:user_id
func (uc *UserController) Delete(c *gin.Context) {
	if err := uc.userService.Delete(c.Param("user_id")); err != nil {
		respondUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
