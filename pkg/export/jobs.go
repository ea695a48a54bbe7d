// Package export renders job postings as spreadsheet downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"heyjob-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const sheetName = "Jobs"

var headers = []string{
	"ID", "JOB TITLE", "POSITION", "COMPANY", "CATEGORY", "PACKAGE (LPA)",
	"LOCATION", "DESCRIPTION", "CREATED AT", "UPDATED AT",
}

func row(job domain.JobPosting) []string {
	pkg := ""
	if job.Package != nil {
		pkg = strconv.FormatFloat(*job.Package, 'f', -1, 64)
	}
	return []string{
		job.ID,
		job.JobTitle,
		job.JobPosition,
		job.CompanyDetails,
		string(job.Category),
		pkg,
		job.Location,
		job.JobDescription,
		job.CreatedAt.UTC().Format(time.RFC3339),
		job.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Jobs encodes postings in the requested format and returns the file name to offer.
func Jobs(jobs []domain.JobPosting, format Format, now time.Time) ([]byte, string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatXLSX, "":
		format = FormatXLSX
		data, err = xlsx(jobs)
	case FormatCSV:
		data, err = csvFile(jobs)
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("posted_jobs_%s.%s", now.Format("20060102_150405"), format), nil
}

// ContentType returns the MIME type for format.
func ContentType(format Format) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func xlsx(jobs []domain.JobPosting) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", endCell, headerStyle); err != nil {
		return nil, err
	}

	for rowIdx, job := range jobs {
		values := row(job)
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			var v any = value
			// Keep package numeric so the column sorts
			if colIdx == 5 && job.Package != nil {
				v = *job.Package
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func csvFile(jobs []domain.JobPosting) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, job := range jobs {
		if err := w.Write(row(job)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}
