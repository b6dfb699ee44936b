package violations

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

// SeedViolationsFromJSON mengisi jenis pelanggaran bawaan dari file JSON.
// Nama yang sudah ada dilewati, jadi aman dijalankan berulang.
func SeedViolationsFromJSON(db *gorm.DB, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Seed pelanggaran dilewati, file tidak terbaca: %v", err)
		return
	}

	var rows []violationModel.ViolationModel
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		log.Printf("⚠️ Seed pelanggaran dilewati, JSON tidak valid: %v", err)
		return
	}

	result := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "violation_name"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		log.Printf("❌ Seed pelanggaran gagal: %v", result.Error)
		return
	}
	log.Printf("✅ Seed pelanggaran: %d baris baru.", result.RowsAffected)
}
