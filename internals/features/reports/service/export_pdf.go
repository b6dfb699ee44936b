// internals/features/reports/service/export_pdf.go
package service

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"sipelanggaran_backend/internals/configs"
	"sipelanggaran_backend/internals/features/reports/dto"
)

// GeneratePDF membuat laporan PDF landscape A4: kop sekolah, tabel ringkasan,
// lalu tabel rinci.
func GeneratePDF(result *dto.ReportResult) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// --- Kop ---
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, configs.SchoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, "Laporan Pelanggaran Siswa", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Dibuat pada: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// --- Ringkasan siswa ---
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Ringkasan Siswa", "", 1, "L", false, 0, "")
	summaryHeaders := []string{"Peringkat", "Nama Siswa", "Kelas", "Jumlah Insiden", "Total Poin"}
	summaryWidths := []float64{25, 90, 40, 40, 40}
	drawTableHeader(pdf, summaryHeaders, summaryWidths, 41, 128, 185)

	pdf.SetFont("Arial", "", 9)
	for i, row := range result.Summary {
		cells := []string{
			itoa(i + 1),
			row.StudentName,
			row.StudentClass,
			itoa(row.IncidentCount),
			itoa(row.TotalPoints),
		}
		drawTableRow(pdf, cells, summaryWidths)
	}
	pdf.Ln(6)

	// --- Rinci ---
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, "Laporan Rinci", "", 1, "L", false, 0, "")
	detailHeaders := []string{"Tanggal & Waktu", "Nama Siswa", "Kelas", "Pelanggaran", "Poin", "Guru Pelapor"}
	detailWidths := []float64{35, 55, 25, 85, 15, 55}
	drawTableHeader(pdf, detailHeaders, detailWidths, 22, 160, 133)

	pdf.SetFont("Arial", "", 9)
	for _, row := range result.Details {
		cells := []string{
			row.Timestamp.Format("02/01/2006 15:04"),
			row.StudentName,
			row.StudentClass,
			row.Violations,
			itoa(row.TotalPoints),
			row.TeacherName,
		}
		drawTableRow(pdf, cells, detailWidths)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableHeader(pdf *gofpdf.Fpdf, headers []string, widths []float64, r, g, b int) {
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawTableRow(pdf *gofpdf.Fpdf, cells []string, widths []float64) {
	for i, v := range cells {
		pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
