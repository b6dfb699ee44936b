// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "sipelanggaran_backend/internals/features/school/students/controller"
	teacherController "sipelanggaran_backend/internals/features/school/teachers/controller"
	recordController "sipelanggaran_backend/internals/features/school/violation_records/controller"
	violationController "sipelanggaran_backend/internals/features/school/violations/controller"
)

// Rute untuk guru maupun admin: lookup data master dan pencatatan.
func SchoolUserRoutes(r fiber.Router, db *gorm.DB) {
	studentCtrl := studentController.NewStudentController(db)
	teacherCtrl := teacherController.NewTeacherController(db)
	violationCtrl := violationController.NewViolationController(db)
	recordCtrl := recordController.NewViolationRecordController(db)

	student := r.Group("/students")
	student.Get("/search", studentCtrl.Search)
	student.Get("/classes", studentCtrl.Classes)

	r.Get("/teachers", teacherCtrl.List)
	r.Get("/violations", violationCtrl.List)

	r.Post("/violation-records", recordCtrl.Create)
}

// Rute khusus admin: pengelolaan data master.
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	studentCtrl := studentController.NewStudentController(db)
	teacherCtrl := teacherController.NewTeacherController(db)
	violationCtrl := violationController.NewViolationController(db)

	student := r.Group("/students")
	student.Post("/", studentCtrl.Create)
	student.Get("/", studentCtrl.List)

	teacher := r.Group("/teachers")
	teacher.Post("/", teacherCtrl.Create)
	teacher.Get("/", teacherCtrl.List)

	violation := r.Group("/violations")
	violation.Post("/", violationCtrl.Create)
	violation.Get("/", violationCtrl.List)
}
