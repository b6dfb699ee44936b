// internals/features/admin/backup/controller/backup_controller.go
package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/admin/backup/dto"
	"sipelanggaran_backend/internals/features/admin/backup/service"
	authService "sipelanggaran_backend/internals/features/users/auth/service"
	helper "sipelanggaran_backend/internals/helpers"
)

type BackupController struct {
	Service *service.BackupService
}

func NewBackupController(db *gorm.DB) *BackupController {
	return &BackupController{Service: service.NewBackupService(db)}
}

/* ============================================
   GET /api/a/backup
   Unduhan JSON seluruh database.
   ============================================ */
func (ctrl *BackupController) Download(c *fiber.Ctx) error {
	payload, err := ctrl.Service.Export(c.Context())
	if err != nil {
		log.Println("[ERROR] Gagal membuat backup:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat backup")
	}

	data, err := sonic.Marshal(payload)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat backup")
	}

	filename := fmt.Sprintf("backup-%s.json", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

/* ============================================
   GET /api/a/backup/:collection
   Unduhan JSON satu koleksi (array polos).
   ============================================ */
func (ctrl *BackupController) DownloadCollection(c *fiber.Ctx) error {
	name := c.Params("collection")
	rows, err := ctrl.Service.ExportCollection(c.Context(), name)
	if err != nil {
		log.Println("[ERROR] Gagal membuat backup:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	data, err := sonic.Marshal(rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat backup")
	}

	filename := fmt.Sprintf("backup-%s-%s.json", name, time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

/* ============================================
   POST /api/a/backup/restore
   Body: {password, data}. Password admin wajib
   benar karena data lama dihapus lebih dulu.
   ============================================ */
func (ctrl *BackupController) Restore(c *fiber.Ctx) error {
	var body dto.RestoreRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if !authService.VerifyAdminPassword(body.Password) {
		return helper.JsonError(c, fiber.StatusForbidden, "Password admin salah")
	}

	result, err := ctrl.Service.Restore(c.Context(), body.Data)
	if err != nil {
		log.Println("[ERROR] Restore gagal:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Restore gagal: "+err.Error())
	}
	return respondRestore(c, result)
}

/* ============================================
   POST /api/a/backup/restore/:collection
   Body: {password, data} dengan data berupa
   array polos hasil backup satu koleksi.
   ============================================ */
func (ctrl *BackupController) RestoreCollection(c *fiber.Ctx) error {
	var body dto.RestoreCollectionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if !authService.VerifyAdminPassword(body.Password) {
		return helper.JsonError(c, fiber.StatusForbidden, "Password admin salah")
	}

	result, err := ctrl.Service.RestoreCollection(c.Context(), c.Params("collection"), body.Data)
	if err != nil {
		log.Println("[ERROR] Restore gagal:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Restore gagal: "+err.Error())
	}
	return respondRestore(c, result)
}

func respondRestore(c *fiber.Ctx, result *dto.RestoreResult) error {
	if len(result.Failures) > 0 {
		// Data lama sudah terlanjur dihapus; beri tahu persis berapa baris
		// yang selamat dan potongan mana yang gagal.
		log.Printf("[WARN] Restore parsial: %d baris masuk, %d potongan gagal", result.RestoredCount, len(result.Failures))
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Restore tidak lengkap: %d baris berhasil dipulihkan, sebagian potongan gagal", result.RestoredCount),
			"data":    result,
		})
	}
	return helper.JsonOK(c, fmt.Sprintf("%d baris berhasil dipulihkan", result.RestoredCount), result)
}

/* ============================================
   DELETE /api/a/data/:collection
   Hapus-semua satu koleksi (truncate).
   Body: {password}.
   ============================================ */
func (ctrl *BackupController) DeleteAll(c *fiber.Ctx) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if !authService.VerifyAdminPassword(body.Password) {
		return helper.JsonError(c, fiber.StatusForbidden, "Password admin salah")
	}

	table := c.Params("collection")
	if err := ctrl.Service.TruncateTables(c.Context(), []string{table}); err != nil {
		log.Println("[ERROR] Gagal menghapus data:", err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonDeleted(c, "Seluruh data pada koleksi berhasil dihapus", fiber.Map{"collection": table})
}
