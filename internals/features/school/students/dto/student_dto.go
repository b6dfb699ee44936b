// internals/features/school/students/dto/student_dto.go
package dto

type CreateStudentRequest struct {
	NIPD   string `json:"nipd" validate:"required,max=30"`
	NISN   string `json:"nisn" validate:"required,max=30"`
	Name   string `json:"name" validate:"required,max=120"`
	Gender string `json:"gender" validate:"required,oneof=L P"`
	Class  string `json:"class" validate:"required,max=30"`
}
