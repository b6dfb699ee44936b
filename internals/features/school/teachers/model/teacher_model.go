// internals/features/school/teachers/model/teacher_model.go
package model

/* =========================================================
   MODEL: teachers
   ========================================================= */

// Email dipakai untuk pencocokan identitas login Google → harus unik.
type TeacherModel struct {
	TeacherID    int64  `gorm:"column:teacher_id;primaryKey;autoIncrement" json:"id"`
	TeacherName  string `gorm:"column:teacher_name;type:varchar(120);not null" json:"name"`
	TeacherNIP   string `gorm:"column:teacher_nip;type:varchar(30);not null;uniqueIndex:uq_teachers_nip" json:"nip"`
	TeacherEmail string `gorm:"column:teacher_email;type:varchar(120);not null;uniqueIndex:uq_teachers_email" json:"email"`
}

func (TeacherModel) TableName() string { return "teachers" }
