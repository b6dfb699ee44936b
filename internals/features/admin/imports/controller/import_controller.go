// internals/features/admin/imports/controller/import_controller.go
package controller

import (
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/admin/imports/service"
	helper "sipelanggaran_backend/internals/helpers"
)

const maxImportFileBytes = 10 * 1024 * 1024 // 10MB

type ImportController struct {
	Service *service.ImportService
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{
		Service: service.NewImportService(service.NewGormInserter(db)),
	}
}

/* ============================================
   POST /api/a/imports/:collection
   multipart, field "file" berisi XLSX
   ============================================ */
func (ctrl *ImportController) Upload(c *fiber.Ctx) error {
	schema, ok := service.SchemaFor(c.Params("collection"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis data tidak dikenal")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File import wajib diunggah")
	}
	if fh.Size > maxImportFileBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 10MB")
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}

	rows, err := service.ParseSheet(data, schema)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File bukan XLSX yang valid")
	}
	if len(rows) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak berisi data")
	}

	result := ctrl.Service.Run(c.Context(), schema, rows)
	log.Printf("[INFO] Import %s: %d berhasil, %d gagal", schema.Name, result.SuccessCount, len(result.Failures))
	return helper.JsonOK(c, fmt.Sprintf("%d baris berhasil diimpor", result.SuccessCount), result)
}

/* ============================================
   GET /api/a/imports/:collection/template
   ============================================ */
func (ctrl *ImportController) Template(c *fiber.Ctx) error {
	schema, ok := service.SchemaFor(c.Params("collection"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Jenis data tidak dikenal")
	}

	data, err := service.GenerateTemplate(schema)
	if err != nil {
		log.Println("[ERROR] Gagal membuat template:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat template")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="template-%s.xlsx"`, schema.Name))
	return c.Send(data)
}
