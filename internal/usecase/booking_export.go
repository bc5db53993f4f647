package usecase

import (
	"bytes"
	"fmt"

	"rental-service/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

// BookingsSheet is the worksheet name of the export
const BookingsSheet = "Bookings"

var bookingExportHeaders = []string{
	"Booking ID", "Guest", "Email", "Phone", "Property", "Status",
	"Applied", "Arrival", "Departure", "Price",
}

// ExportBookings renders booking rows as an xlsx workbook
func ExportBookings(rows []entity.TransformedBooking) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BookingsSheet); err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	for i, h := range bookingExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(BookingsSheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(bookingExportHeaders), 1)
		f.SetCellStyle(BookingsSheet, "A1", lastHeader, headerStyle)
	}

	for r, b := range rows {
		values := []interface{}{
			b.ID, b.PersonName, b.Email, b.Phone, b.PropertyName, b.Status,
			b.ApplyDate, b.Arrival, b.Departure, b.Price,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(BookingsSheet, cell, v)
		}
	}

	f.SetColWidth(BookingsSheet, "A", "A", 12)
	f.SetColWidth(BookingsSheet, "B", "E", 28)
	f.SetColWidth(BookingsSheet, "F", "J", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}
