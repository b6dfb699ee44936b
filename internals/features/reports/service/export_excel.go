// internals/features/reports/service/export_excel.go
package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"sipelanggaran_backend/internals/features/reports/dto"
)

const (
	sheetSummary = "Ringkasan Siswa"
	sheetDetail  = "Laporan Rinci"

	exportTimeLayout = "02/01/2006 15:04"
)

// GenerateExcel membuat workbook dua sheet (ringkasan + rinci) dengan lebar
// kolom menyesuaikan isi, sama seperti ekspor di aplikasi lama.
func GenerateExcel(result *dto.ReportResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// --- Sheet 1: Ringkasan Siswa ---
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}
	summaryHeaders := []string{"Peringkat", "Nama Siswa", "Kelas", "Jumlah Insiden", "Total Poin"}
	summaryRows := make([][]any, 0, len(result.Summary))
	for i, row := range result.Summary {
		summaryRows = append(summaryRows, []any{i + 1, row.StudentName, row.StudentClass, row.IncidentCount, row.TotalPoints})
	}
	if err := writeSheet(f, sheetSummary, summaryHeaders, summaryRows); err != nil {
		return nil, err
	}

	// --- Sheet 2: Laporan Rinci ---
	if _, err := f.NewSheet(sheetDetail); err != nil {
		return nil, err
	}
	detailHeaders := []string{"Tanggal & Waktu", "Nama Siswa", "Kelas", "Pelanggaran", "Poin Insiden", "Guru Pelapor"}
	detailRows := make([][]any, 0, len(result.Details))
	for _, row := range result.Details {
		detailRows = append(detailRows, []any{
			row.Timestamp.Format(exportTimeLayout),
			row.StudentName,
			row.StudentClass,
			row.Violations,
			row.TotalPoints,
			row.TeacherName,
		})
	}
	if err := writeSheet(f, sheetDetail, detailHeaders, detailRows); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	widths := make([]int, len(headers))

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		widths[col] = len(h)
	}

	for r, row := range rows {
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
			if n := len(fmt.Sprint(val)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	// auto-fit sederhana: lebar = panjang teks terpanjang + padding
	for col := range headers {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, name, name, float64(widths[col])+2); err != nil {
			return err
		}
	}
	return nil
}
