package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/directory"
)

// Service renders already-computed query results into downloadable PDF
// documents. It is a presentation transform, not a data source.
type Service struct {
	Employees *directory.Store
	Analytics *analytics.Service
	Dir       string
}

func NewService(employees *directory.Store, analyticsSvc *analytics.Service, dir string) *Service {
	return &Service{Employees: employees, Analytics: analyticsSvc, Dir: dir}
}

// GenerateEmployeeProfilePDF writes a one-page profile for a single
// employee and returns the file path.
func (s *Service) GenerateEmployeeProfilePDF(ctx context.Context, employeeID int64) (string, error) {
	emp, err := s.Employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.Dir, "employee-"+uuid.NewString()+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Profile")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)

	lines := []string{
		fmt.Sprintf("ID: %d", emp.ID),
		fmt.Sprintf("Name: %s", emp.Name),
		fmt.Sprintf("Department: %s", emp.Department),
		fmt.Sprintf("Role: %s", emp.RoleTitle),
		fmt.Sprintf("Skills: %s", emp.Skills),
		fmt.Sprintf("Status: %s", emp.Status),
		fmt.Sprintf("Joined: %s", emp.JoinDate),
		fmt.Sprintf("Salary: %.2f", emp.Salary),
		fmt.Sprintf("Location: %s", emp.Location),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(7)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

// GenerateRosterPDF writes the full roster with a headcount summary
// header followed by a fixed-layout field table.
func (s *Service) GenerateRosterPDF(ctx context.Context) (string, error) {
	employees, err := s.Employees.ListEmployees(ctx, directory.ListFilter{})
	if err != nil {
		return "", err
	}
	dash, err := s.Analytics.BuildDashboard(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.Dir, "roster-"+uuid.NewString()+".pdf")

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(60, 10, "Workforce Roster Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %d   Active: %d   Resigned: %d",
		dash.Employees.Total, dash.Employees.Active, dash.Employees.Resigned))
	pdf.Ln(10)

	headers := []string{"ID", "Name", "Department", "Role", "Status", "Join Date", "Salary", "Location"}
	widths := []float64{15, 55, 40, 40, 25, 30, 30, 40}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 240)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, emp := range employees {
		cells := []string{
			fmt.Sprintf("%d", emp.ID),
			emp.Name,
			emp.Department,
			emp.RoleTitle,
			emp.Status,
			emp.JoinDate,
			fmt.Sprintf("%.2f", emp.Salary),
			emp.Location,
		}
		for i, value := range cells {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
