// internals/features/school/students/model/student_model.go
package model

import (
	"database/sql/driver"
	"strings"
)

/* =========================================================
   ENUM: student_gender  (harus sama dengan CHECK di DB)
   ========================================================= */

type StudentGender string

const (
	GenderMale   StudentGender = "L"
	GenderFemale StudentGender = "P"
)

// Scan & Value → jaga konsistensi uppercase + trim
func (g *StudentGender) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*g = StudentGender(strings.ToUpper(strings.TrimSpace(v)))
	case []byte:
		*g = StudentGender(strings.ToUpper(strings.TrimSpace(string(v))))
	case nil:
		*g = ""
	default:
		*g = StudentGender(strings.ToUpper(strings.TrimSpace(v.(string))))
	}
	return nil
}
func (g StudentGender) Value() (driver.Value, error) {
	return strings.ToUpper(strings.TrimSpace(string(g))), nil
}

func (g StudentGender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

/* =========================================================
   MODEL: students
   ========================================================= */

// JSON tag mengikuti kontrak file impor/backup (kolom spreadsheet harus
// bernama nipd/nisn/name/gender/class), bukan nama kolom DB.
type StudentModel struct {
	StudentID     int64         `gorm:"column:student_id;primaryKey;autoIncrement" json:"id"`
	StudentNIPD   string        `gorm:"column:student_nipd;type:varchar(30);not null;uniqueIndex:uq_students_nipd" json:"nipd"`
	StudentNISN   string        `gorm:"column:student_nisn;type:varchar(30);not null;uniqueIndex:uq_students_nisn" json:"nisn"`
	StudentName   string        `gorm:"column:student_name;type:varchar(120);not null" json:"name"`
	StudentGender StudentGender `gorm:"column:student_gender;type:varchar(1);not null;check:chk_students_gender,student_gender IN ('L','P')" json:"gender"`
	StudentClass  string        `gorm:"column:student_class;type:varchar(30);not null" json:"class"`
}

func (StudentModel) TableName() string { return "students" }
