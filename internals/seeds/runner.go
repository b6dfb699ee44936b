package seeds

import (
	"gorm.io/gorm"

	violations "sipelanggaran_backend/internals/seeds/violations"
)

func RunAllSeeds(db *gorm.DB) {
	violations.SeedViolationsFromJSON(db, "internals/seeds/violations/data_violations.json")
}
