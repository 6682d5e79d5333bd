package Controllers

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"Wander/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// buildTripWorkbook renders a trip with its days and activities into an Excel
// workbook, one row per activity.
func buildTripWorkbook(trip *Models.Trip) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Itinerary"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Day", "Date", "Destination", "Activity", "Type",
		"Start Time", "End Time", "Rating", "Address", "Description",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	row := 2
	for _, day := range trip.Days {
		for _, activity := range day.Activities {
			values := []interface{}{
				day.DayNumber,
				day.Date,
				day.Destination,
				activity.Destination,
				activity.Type,
				activity.StartTime,
				activity.EndTime,
				activity.Rating,
				activity.Address,
				activity.Description,
			}
			for colIndex, value := range values {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
				f.SetCellValue(sheetName, cell, value)
			}
			row++
		}
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}

	return &buf, nil
}

// ExportTrip streams a trip as an .xlsx download
func (c *TripController) ExportTrip(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid trip ID"})
	}

	var trip Models.Trip
	result := c.DB.Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("day_number")
	}).Preload("Days.Activities").First(&trip, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Trip not found"})
	}

	excelBuffer, err := buildTripWorkbook(&trip)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("trip_%d_%s.xlsx", trip.ID, timestamp)

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Set("Content-Length", fmt.Sprintf("%d", excelBuffer.Len()))

	return ctx.Send(excelBuffer.Bytes())
}
