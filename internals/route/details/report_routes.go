// file: internals/route/details/report_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "sipelanggaran_backend/internals/features/reports/controller"
)

func ReportRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	report := r.Group("/reports")
	report.Post("/", ctrl.Generate)
	report.Post("/export/excel", ctrl.ExportExcel)
	report.Post("/export/pdf", ctrl.ExportPDF)
}
