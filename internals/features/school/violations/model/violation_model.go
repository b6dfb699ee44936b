// internals/features/school/violations/model/violation_model.go
package model

/* =========================================================
   MODEL: violations (jenis pelanggaran + poin)
   ========================================================= */

type ViolationModel struct {
	ViolationID     int64  `gorm:"column:violation_id;primaryKey;autoIncrement" json:"id"`
	ViolationName   string `gorm:"column:violation_name;type:varchar(160);not null;uniqueIndex:uq_violations_name" json:"name"`
	ViolationPoints int    `gorm:"column:violation_points;not null;check:chk_violations_points,violation_points > 0" json:"points"`
}

func (ViolationModel) TableName() string { return "violations" }
