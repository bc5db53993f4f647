package handler

import (
	"errors"
	"net/http"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
	"rental-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// GetProfile handles GET /user/profile
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": currentUser(c)})
}

// UpdateProfile handles PUT /user/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updated, err := h.profiles.UpdateProfile(c.Request.Context(), currentUser(c), &req, c.GetString(requestIDKey))
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		switch {
		case errors.As(err, &notFoundErr):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		case errors.Is(err, usecase.ErrProfileReload):
			h.logger.Error("Failed to reload profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to retrieve updated user data"})
		default:
			h.failure(c, err, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// ChangePassword handles PUT /user/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req entity.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.profiles.ChangePassword(c.Request.Context(), currentUser(c), &req); err != nil {
		h.failure(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
