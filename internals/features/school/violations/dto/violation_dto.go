// internals/features/school/violations/dto/violation_dto.go
package dto

type CreateViolationRequest struct {
	Name   string `json:"name" validate:"required,max=160"`
	Points int    `json:"points" validate:"required,gt=0"`
}
