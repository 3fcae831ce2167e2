package directory

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"workforce/internal/apperror"
)

const csvHeader = "id,name,age,department,role,join_date,salary\n"

func TestImportCSVMixedRows(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	importer := NewImporter(store)

	payload := csvHeader +
		"1,Alice Perera,31,Engineering,Backend Engineer,2023-04-01,95000\n" +
		"2,Bob Silva,28,Sales,Account Manager,2024-01-15,70000\n" +
		"3,,35,Engineering,SRE,2022-08-01,88000\n" +
		"4,Dave Kumar,abc,Finance,Analyst,2024-06-01,60000\n" +
		"5,Eve Jayawardena,40,HR,HR Lead,01/02/2023,65000\n" +
		"6,Frank De Mel,45,Engineering,Architect,2019-03-10,120000\n"

	report, err := importer.ImportCSV(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if report.Inserted != 3 {
		t.Fatalf("expected 3 inserted, got %d", report.Inserted)
	}
	if report.Rejected != 3 {
		t.Fatalf("expected 3 rejected, got %d", report.Rejected)
	}
	if len(report.Failures) != 3 {
		t.Fatalf("expected 3 failure entries, got %d", len(report.Failures))
	}
	for _, failure := range report.Failures {
		if failure.Reason == "" {
			t.Fatalf("rejection for row %d has no reason", failure.Row)
		}
	}

	all, err := store.ListEmployees(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 stored rows, got %d", len(all))
	}

	emp, err := store.GetEmployee(ctx, 6)
	if err != nil {
		t.Fatalf("imported row kept its file id: %v", err)
	}
	if emp.Name != "Frank De Mel" || emp.Salary != 120000 {
		t.Fatalf("imported fields mismatch: %+v", emp)
	}
}

func TestImportCSVMissingRequiredColumn(t *testing.T) {
	importer := NewImporter(NewStore(openTestDB(t)))

	payload := "id,name,age,department,join_date\n1,Alice,31,Engineering,2023-04-01\n"
	_, err := importer.ImportCSV(context.Background(), strings.NewReader(payload))
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "role") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	importer := NewImporter(NewStore(openTestDB(t)))

	_, err := importer.ImportCSV(context.Background(), strings.NewReader(""))
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportCSVDuplicateIDInFile(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	importer := NewImporter(store)

	payload := csvHeader +
		"7,Alice Perera,31,Engineering,Backend Engineer,2023-04-01,95000\n" +
		"7,Bob Silva,28,Sales,Account Manager,2024-01-15,70000\n"

	report, err := importer.ImportCSV(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 1 || report.Rejected != 1 {
		t.Fatalf("expected 1 inserted and 1 rejected, got %+v", report)
	}

	emp, err := store.GetEmployee(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if emp.Name != "Alice Perera" {
		t.Fatalf("first occurrence should win, got %q", emp.Name)
	}
}

func TestImportCSVConflictsWithExistingRow(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	importer := NewImporter(store)

	existing := sampleEmployee()
	existing.ID = 9
	if err := store.CreateEmployeeWithID(ctx, existing); err != nil {
		t.Fatalf("seed existing: %v", err)
	}

	payload := csvHeader +
		"9,Impostor,50,Engineering,Spy,2020-01-01,1\n" +
		"10,Bob Silva,28,Sales,Account Manager,2024-01-15,70000\n"

	report, err := importer.ImportCSV(ctx, strings.NewReader(payload))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 1 || report.Rejected != 1 {
		t.Fatalf("conflicting row should be rejected without failing the batch: %+v", report)
	}

	emp, err := store.GetEmployee(ctx, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if emp.Name != existing.Name {
		t.Fatalf("existing row must be untouched, got %q", emp.Name)
	}
}

func TestImportXLSX(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t))
	importer := NewImporter(store)

	book := excelize.NewFile()
	defer book.Close()

	rows := [][]any{
		{"name", "department", "role", "join_date", "salary"},
		{"Alice Perera", "Engineering", "Backend Engineer", "2023-04-01", 95000},
		{"Bob Silva", "Sales", "Account Manager", "2024-01-15", 70000},
		{"", "Sales", "Rep", "2024-02-01", 50000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	report, err := importer.ImportXLSX(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 2 || report.Rejected != 1 {
		t.Fatalf("expected 2 inserted and 1 rejected, got %+v", report)
	}

	all, err := store.ListEmployees(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(all))
	}
}

func TestImportXLSXNotAWorkbook(t *testing.T) {
	importer := NewImporter(NewStore(openTestDB(t)))

	_, err := importer.ImportXLSX(context.Background(), strings.NewReader("plain text"))
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseRowStatusEnum(t *testing.T) {
	index := map[string]int{"name": 0, "department": 1, "role": 2, "join_date": 3, "status": 4}

	emp, err := parseRow(index, []string{"Alice", "Engineering", "Dev", "2023-04-01", ""})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if emp.Status != StatusActive {
		t.Fatalf("blank status should default to Active, got %q", emp.Status)
	}

	if _, err := parseRow(index, []string{"Alice", "Engineering", "Dev", "2023-04-01", "Fired"}); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}
