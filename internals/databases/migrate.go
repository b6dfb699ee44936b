package database

import (
	"log"

	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

// Migrate menjalankan auto-migration untuk semua tabel aplikasi.
func Migrate() {
	err := DB.AutoMigrate(
		&studentModel.StudentModel{},
		&teacherModel.TeacherModel{},
		&violationModel.ViolationModel{},
		&recordModel.ViolationRecordModel{},
	)
	if err != nil {
		log.Fatalf("❌ Gagal migrasi DB: %v", err)
	}
	log.Println("✅ Migrasi DB selesai.")
}
