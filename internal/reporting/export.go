package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	fleet "fleetdock/internal/fleet/domain"
)

const dateLayout = "2006-01-02"

// Report is the input snapshot for an export.
type Report struct {
	Ships       []fleet.Ship
	Components  []fleet.Component
	Jobs        []fleet.Job
	GeneratedAt time.Time
}

// BuildFleetXLSX renders the fleet report workbook with one sheet per
// collection.
func BuildFleetXLSX(report Report) ([]byte, error) {
	f := excelize.NewFile()
	shipsSheet := "ships"
	componentsSheet := "components"
	jobsSheet := "jobs"
	f.SetSheetName("Sheet1", shipsSheet)
	f.NewSheet(componentsSheet)
	f.NewSheet(jobsSheet)

	shipHeaders := []string{"ID", "Name", "IMO", "Flag", "Status", "Created"}
	for i, header := range shipHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(shipsSheet, cell, header)
	}
	for i, ship := range report.Ships {
		row := i + 2
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("A%d", row), ship.ID)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("B%d", row), ship.Name)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("C%d", row), ship.IMO)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("D%d", row), ship.Flag)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("E%d", row), ship.Status)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("F%d", row), ship.CreatedAt.Format(dateLayout))
	}

	componentHeaders := []string{"ID", "Ship", "Name", "Serial", "Installed", "Last Maintenance", "Next Maintenance"}
	for i, header := range componentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(componentsSheet, cell, header)
	}
	for i, component := range report.Components {
		row := i + 2
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("A%d", row), component.ID)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("B%d", row), component.ShipID)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("C%d", row), component.Name)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("D%d", row), component.SerialNumber)
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("E%d", row), component.InstallDate.Format(dateLayout))
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("F%d", row), component.LastMaintenanceDate.Format(dateLayout))
		_ = f.SetCellValue(componentsSheet, fmt.Sprintf("G%d", row), component.NextMaintenanceDate.Format(dateLayout))
	}

	jobHeaders := []string{"ID", "Component", "Ship", "Type", "Priority", "Status", "Engineer", "Scheduled", "Description"}
	for i, header := range jobHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(jobsSheet, cell, header)
	}
	for i, job := range report.Jobs {
		row := i + 2
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("A%d", row), job.ID)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("B%d", row), job.ComponentID)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("C%d", row), job.ShipID)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("D%d", row), job.Type)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("E%d", row), job.Priority)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("F%d", row), job.Status)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("G%d", row), job.AssignedEngineerID)
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("H%d", row), job.ScheduledDate.Format(dateLayout))
		_ = f.SetCellValue(jobsSheet, fmt.Sprintf("I%d", row), job.Description)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFleetPDF renders a summary PDF with a jobs table.
func BuildFleetPDF(report Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Fleet Maintenance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Ships: %d", len(report.Ships)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Components: %d", len(report.Components)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Jobs: %d", len(report.Jobs)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Scheduled", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Priority", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Ship / Component", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, job := range report.Jobs {
		pdf.CellFormat(35, 6, job.ScheduledDate.Format(dateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, job.Type, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, job.Priority, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, job.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, fmt.Sprintf("%s / %s", job.ShipID, job.ComponentID), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
