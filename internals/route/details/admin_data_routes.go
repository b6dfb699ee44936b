// file: internals/route/details/admin_data_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	backupController "sipelanggaran_backend/internals/features/admin/backup/controller"
	importController "sipelanggaran_backend/internals/features/admin/imports/controller"
)

// Rute data level admin: import massal, backup/restore, hapus-semua.
func AdminDataRoutes(r fiber.Router, db *gorm.DB) {
	importCtrl := importController.NewImportController(db)
	backupCtrl := backupController.NewBackupController(db)

	imports := r.Group("/imports")
	imports.Post("/:collection", importCtrl.Upload)
	imports.Get("/:collection/template", importCtrl.Template)

	backup := r.Group("/backup")
	backup.Get("/", backupCtrl.Download)
	backup.Post("/restore", backupCtrl.Restore)
	backup.Post("/restore/:collection", backupCtrl.RestoreCollection)
	backup.Get("/:collection", backupCtrl.DownloadCollection)

	r.Delete("/data/:collection", backupCtrl.DeleteAll)
}
