package directory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"workforce/internal/apperror"
)

// The bulk import schema is declared up front: header names, expected
// types and whether a column must be present. Rows failing validation
// are rejected individually; the batch never fails as a whole.
type column struct {
	name     string
	required bool
}

var importColumns = []column{
	{name: "id"},
	{name: "name", required: true},
	{name: "age"},
	{name: "gender"},
	{name: "department", required: true},
	{name: "role", required: true},
	{name: "skills"},
	{name: "join_date", required: true},
	{name: "resign_date"},
	{name: "status"},
	{name: "salary"},
	{name: "location"},
}

type RowRejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportReport struct {
	Inserted    int            `json:"inserted"`
	Rejected    int            `json:"rejected"`
	Failures    []RowRejection `json:"failures,omitempty"`
	InsertedIDs []int64        `json:"insertedIds,omitempty"`
}

type Importer struct {
	Store *Store
}

func NewImporter(store *Store) *Importer {
	return &Importer{Store: store}
}

// ImportCSV reads a comma-separated payload whose header row must
// contain every required employee column.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportReport{}, apperror.New(apperror.CodeValidation, "import file is empty or has no header row")
	}

	index, err := headerIndex(header)
	if err != nil {
		return ImportReport{}, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportReport{}, apperror.Wrap(apperror.CodeValidation, "import file is not valid CSV", err)
		}
		records = append(records, record)
	}

	return im.importRecords(ctx, index, records)
}

// ImportXLSX reads the first sheet of a workbook using the same
// declared schema as the CSV path.
func (im *Importer) ImportXLSX(ctx context.Context, r io.Reader) (ImportReport, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return ImportReport{}, apperror.Wrap(apperror.CodeValidation, "import file is not a valid workbook", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return ImportReport{}, apperror.New(apperror.CodeValidation, "workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return ImportReport{}, apperror.Wrap(apperror.CodeValidation, "failed to read workbook rows", err)
	}
	if len(rows) == 0 {
		return ImportReport{}, apperror.New(apperror.CodeValidation, "import file is empty or has no header row")
	}

	index, err := headerIndex(rows[0])
	if err != nil {
		return ImportReport{}, err
	}

	return im.importRecords(ctx, index, rows[1:])
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range importColumns {
		if !col.required {
			continue
		}
		if _, ok := index[col.name]; !ok {
			missing = append(missing, col.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.New(apperror.CodeValidation, "missing required columns: "+strings.Join(missing, ", "))
	}
	return index, nil
}

func (im *Importer) importRecords(ctx context.Context, index map[string]int, records [][]string) (ImportReport, error) {
	report := ImportReport{}
	seenIDs := map[int64]bool{}

	for i, record := range records {
		rowNum := i + 2 // 1-based, counting the header

		emp, err := parseRow(index, record)
		if err != nil {
			report.Rejected++
			report.Failures = append(report.Failures, RowRejection{Row: rowNum, Reason: err.Error()})
			continue
		}

		if emp.ID > 0 && seenIDs[emp.ID] {
			report.Rejected++
			report.Failures = append(report.Failures, RowRejection{Row: rowNum, Reason: fmt.Sprintf("duplicate id %d in file", emp.ID)})
			continue
		}

		if emp.ID > 0 {
			err = im.Store.CreateEmployeeWithID(ctx, emp)
		} else {
			emp.ID, err = im.Store.CreateEmployee(ctx, emp)
		}
		if err != nil {
			report.Rejected++
			report.Failures = append(report.Failures, RowRejection{Row: rowNum, Reason: err.Error()})
			continue
		}

		if emp.ID > 0 {
			seenIDs[emp.ID] = true
		}
		report.Inserted++
		report.InsertedIDs = append(report.InsertedIDs, emp.ID)
	}

	return report, nil
}

func parseRow(index map[string]int, record []string) (Employee, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	emp := Employee{
		Name:       cell("name"),
		Gender:     cell("gender"),
		Department: cell("department"),
		RoleTitle:  cell("role"),
		Skills:     cell("skills"),
		JoinDate:   cell("join_date"),
		ResignDate: cell("resign_date"),
		Status:     cell("status"),
		Location:   cell("location"),
	}

	for _, col := range importColumns {
		if col.required && cell(col.name) == "" {
			return Employee{}, fmt.Errorf("missing required field %q", col.name)
		}
	}

	if raw := cell("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Employee{}, fmt.Errorf("id %q is not a positive integer", raw)
		}
		emp.ID = id
	}

	if raw := cell("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			return Employee{}, fmt.Errorf("age %q is not a valid number", raw)
		}
		emp.Age = age
	}

	if raw := cell("salary"); raw != "" {
		salary, err := strconv.ParseFloat(raw, 64)
		if err != nil || salary < 0 {
			return Employee{}, fmt.Errorf("salary %q is not a valid number", raw)
		}
		emp.Salary = salary
	}

	if _, err := time.Parse("2006-01-02", emp.JoinDate); err != nil {
		return Employee{}, fmt.Errorf("join_date %q is not a valid YYYY-MM-DD date", emp.JoinDate)
	}
	if emp.ResignDate != "" {
		if _, err := time.Parse("2006-01-02", emp.ResignDate); err != nil {
			return Employee{}, fmt.Errorf("resign_date %q is not a valid YYYY-MM-DD date", emp.ResignDate)
		}
	}

	switch emp.Status {
	case "":
		emp.Status = StatusActive
	case StatusActive, StatusResigned:
	default:
		return Employee{}, fmt.Errorf("status %q must be Active or Resigned", emp.Status)
	}

	return emp, nil
}
