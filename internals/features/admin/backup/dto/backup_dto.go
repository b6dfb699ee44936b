// internals/features/admin/backup/dto/backup_dto.go
package dto

import (
	"encoding/json"

	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

// BackupPayload adalah isi file backup JSON. Field mengikuti tag JSON model,
// jadi file lama tetap bisa dipulihkan.
type BackupPayload struct {
	Students         []studentModel.StudentModel         `json:"students"`
	Teachers         []teacherModel.TeacherModel         `json:"teachers"`
	Violations       []violationModel.ViolationModel     `json:"violations"`
	ViolationRecords []recordModel.ViolationRecordModel `json:"violation_records"`
}

type RestoreRequest struct {
	// Konfirmasi password admin sebelum data lama dihapus.
	Password string        `json:"password" validate:"required"`
	Data     BackupPayload `json:"data" validate:"required"`
}

// RestoreCollectionRequest memulihkan satu koleksi dari file backup berbentuk
// array polos; isinya diteruskan mentah supaya service yang menentukan tipe
// barisnya dari nama koleksi.
type RestoreCollectionRequest struct {
	Password string          `json:"password" validate:"required"`
	Data     json.RawMessage `json:"data" validate:"required"`
}

type ChunkFailure struct {
	Collection string `json:"collection"`
	FromRow    int    `json:"from_row"`
	ToRow      int    `json:"to_row"`
	Reason     string `json:"reason"`
}

type RestoreResult struct {
	RestoredCount int            `json:"restored_count"`
	Failures      []ChunkFailure `json:"failures"`
}
