package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-service/internal/domain/apperror"
	"rental-service/internal/domain/entity"
	"rental-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// GetProperty handles GET /properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	result, remoteErr, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to fetch property", "propertyId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch property",
			"details": err.Error(),
		})
		return
	}

	if _, missing := result.(usecase.NotFound); missing {
		c.JSON(http.StatusNotFound, gin.H{
			"error":         "Property not found in either OwnerRez or local database",
			"ownerRezError": nullable(remoteErr),
			"source":        usecase.SourceNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"property":      result,
		"source":        result.Source(),
		"ownerRezError": nullable(remoteErr),
	})
}

// UpdateProperty handles PUT /properties/:id. The body is forwarded to OwnerRez as is.
func (h *Handler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")

	body, err := c.GetRawData()
	if err != nil || (len(body) > 0 && !json.Valid(body)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	var actorID string
	if user := currentUser(c); user != nil {
		actorID = user.ID.Hex()
	}

	data, err := h.properties.UpdateProperty(c.Request.Context(), id, body, actorID, c.GetString(requestIDKey))
	if err != nil {
		status, payload := remoteFailure(err, "Failed to update property")
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": data})
}

// remoteFailure maps an OwnerRez error to its status, the remote message and the remote body
func remoteFailure(err error, fallback string) (int, gin.H) {
	var apiErr *apperror.RemoteAPIError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()}
	}

	message := fallback
	var details interface{} = apiErr.Message
	if len(apiErr.Details) > 0 {
		details = apiErr.Details
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(apiErr.Details, &body) == nil && body.Message != "" {
			message = body.Message
		}
	}

	return apperror.HTTPStatus(apiErr), gin.H{"error": message, "details": details}
}

// SaveLocalProperty handles PATCH /properties/:id/local
func (h *Handler) SaveLocalProperty(c *gin.Context) {
	var input entity.LocalPropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	property, err := h.properties.SaveLocalProperty(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.failure(c, err, "Failed to save property")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "property": property})
}

// failure writes the {success:false, message} envelope for err
func (h *Handler) failure(c *gin.Context, err error, fallback string) {
	status := apperror.HTTPStatus(err)

	var validErr *apperror.ValidationError
	var notFoundErr *apperror.NotFoundError
	switch {
	case errors.As(err, &validErr):
		c.JSON(status, gin.H{"success": false, "message": validErr.Message, "fields": validErr.Fields})
	case errors.As(err, &notFoundErr):
		c.JSON(status, gin.H{"success": false, "message": notFoundErr.Error()})
	default:
		h.logger.Error(fallback, "error", err, "requestId", c.GetString(requestIDKey))
		c.JSON(status, gin.H{"success": false, "message": fallback})
	}
}
