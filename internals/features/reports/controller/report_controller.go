// internals/features/reports/controller/report_controller.go
package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/reports/dto"
	"sipelanggaran_backend/internals/features/reports/service"
	helper "sipelanggaran_backend/internals/helpers"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		Service: service.NewReportService(service.NewGormDataSource(db)),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (ctrl *ReportController) parseFilters(c *fiber.Ctx) (*dto.ReportFilters, error) {
	var filters dto.ReportFilters
	if err := c.BodyParser(&filters); err != nil {
		return nil, fmt.Errorf("Invalid request")
	}
	if err := validate.Struct(&filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

/* ============================================
   POST /api/u/reports
   ============================================ */
func (ctrl *ReportController) Generate(c *fiber.Ctx) error {
	filters, err := ctrl.parseFilters(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := ctrl.Service.Generate(c.Context(), *filters)
	if err != nil {
		log.Println("[ERROR] Gagal menyusun laporan:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan")
	}
	return helper.JsonOK(c, "OK", result)
}

/* ============================================
   POST /api/u/reports/export/excel
   ============================================ */
func (ctrl *ReportController) ExportExcel(c *fiber.Ctx) error {
	filters, err := ctrl.parseFilters(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := ctrl.Service.Generate(c.Context(), *filters)
	if err != nil {
		log.Println("[ERROR] Gagal menyusun laporan:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan")
	}

	data, err := service.GenerateExcel(result)
	if err != nil {
		log.Println("[ERROR] Gagal membuat file Excel:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file Excel")
	}

	filename := fmt.Sprintf("laporan-pelanggaran-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

/* ============================================
   POST /api/u/reports/export/pdf
   ============================================ */
func (ctrl *ReportController) ExportPDF(c *fiber.Ctx) error {
	filters, err := ctrl.parseFilters(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := ctrl.Service.Generate(c.Context(), *filters)
	if err != nil {
		log.Println("[ERROR] Gagal menyusun laporan:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan")
	}

	data, err := service.GeneratePDF(result)
	if err != nil {
		log.Println("[ERROR] Gagal membuat file PDF:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file PDF")
	}

	filename := fmt.Sprintf("laporan-pelanggaran-%s.pdf", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
