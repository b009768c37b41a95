package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyspace-client/internal/core/domain"

	"github.com/xuri/excelize/v2"
)

// ExportService writes the active booking list to an Excel file
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

const exportSheet = "Bookings"

// ExportXLSX writes bookings to path, creating parent directories as
// needed, and returns the written file path.
func (s *ExportService) ExportXLSX(bookings []domain.Booking, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("error creating export directory: %v", err)
		}
	}

	f := excelize.NewFile()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Exported: %s", time.Now().Format("2006-01-02 15:04")))

	headers := []string{"Room", "Floor", "Date", "Time", "Booked for"}
	headerStyle, styleErr := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		f.SetCellValue(exportSheet, cell, header)
		if styleErr == nil {
			f.SetCellStyle(exportSheet, cell, cell, headerStyle)
		}
	}

	row := 3
	for _, b := range bookings {
		name := b.FullName
		if name == "" {
			name = b.UserName
		}
		values := []interface{}{b.Room, string(b.Floor), b.BookingDate, string(b.BookingTime), name}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
		row++
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, 18)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving export: %v", err)
	}
	return path, nil
}
