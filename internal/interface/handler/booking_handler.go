package handler

import (
	"fmt"
	"net/http"
	"time"

	"rental-service/internal/domain/entity"
	"rental-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	defaultBookingLimit = 50
	maxBookingLimit     = 100
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// bookingQuery reads limit, offset, since and guestSince from the request
func (h *Handler) bookingQuery(c *gin.Context) (entity.BookingQuery, string) {
	limit := intQuery(c.Query("limit"), defaultBookingLimit)
	if limit > maxBookingLimit {
		limit = maxBookingLimit
	}
	offset := intQuery(c.Query("offset"), 0)

	since := c.DefaultQuery("since", h.opts.DefaultSince)
	guestSince := c.DefaultQuery("guestSince", h.opts.DefaultSince)

	return entity.BookingQuery{Limit: limit, Offset: offset, Since: since}, guestSince
}

// ListBookings handles GET /bookings/all
func (h *Handler) ListBookings(c *gin.Context) {
	query, guestSince := h.bookingQuery(c)

	listing, err := h.bookings.ListBookings(c.Request.Context(), query, guestSince)
	if err != nil {
		h.logger.Error("Failed to list bookings", "error", err, "requestId", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// ExportBookings handles GET /bookings/export and streams the page as an xlsx workbook
func (h *Handler) ExportBookings(c *gin.Context) {
	query, guestSince := h.bookingQuery(c)

	listing, err := h.bookings.ListBookings(c.Request.Context(), query, guestSince)
	if err != nil {
		h.logger.Error("Failed to list bookings for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	buf, err := usecase.ExportBookings(listing.Bookings)
	if err != nil {
		h.logger.Error("Failed to build bookings workbook", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export bookings"})
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
