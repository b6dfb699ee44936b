// internals/features/school/violation_records/model/violation_record_model.go
package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

/* =========================================================
   MODEL: violation_records
   ========================================================= */

// Satu catatan insiden: >=1 siswa, >=1 jenis pelanggaran, tepat satu guru
// pelapor. Immutable setelah dibuat — tidak ada path update, hanya create
// dan truncate massal.
type ViolationRecordModel struct {
	RecordID           int64                        `gorm:"column:record_id;primaryKey;autoIncrement" json:"id"`
	RecordStudentIDs   pq.Int64Array                `gorm:"column:record_student_ids;type:bigint[];not null" json:"student_ids"`
	RecordViolationIDs pq.Int64Array                `gorm:"column:record_violation_ids;type:bigint[];not null" json:"violation_ids"`
	RecordTeacherID    int64                        `gorm:"column:record_teacher_id;not null;index" json:"teacher_id"`
	RecordTimestamp    time.Time                    `gorm:"column:record_timestamp;not null;autoCreateTime;index" json:"timestamp"`
	RecordPhotoURLs    datatypes.JSONSlice[string] `gorm:"column:record_photo_urls;type:jsonb" json:"photo_urls,omitempty"`
}

func (ViolationRecordModel) TableName() string { return "violation_records" }
