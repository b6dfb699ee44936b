// internals/features/school/teachers/dto/teacher_dto.go
package dto

type CreateTeacherRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	NIP   string `json:"nip" validate:"required,max=30"`
	Email string `json:"email" validate:"required,email,max=120"`
}
