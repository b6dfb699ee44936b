// internals/features/school/violation_records/dto/violation_record_dto.go
package dto

type CreateViolationRecordRequest struct {
	StudentIDs   []int64 `json:"student_ids" validate:"required,min=1,dive,gt=0"`
	ViolationIDs []int64 `json:"violation_ids" validate:"required,min=1,dive,gt=0"`
	// Wajib bila yang login admin; guru diambil dari token.
	TeacherID int64 `json:"teacher_id" validate:"omitempty,gt=0"`
}

type ViolationRecordResponse struct {
	ID           int64    `json:"id"`
	StudentIDs   []int64  `json:"student_ids"`
	ViolationIDs []int64  `json:"violation_ids"`
	TeacherID    int64    `json:"teacher_id"`
	Timestamp    string   `json:"timestamp"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
	PhotoErrors  []string `json:"photo_errors,omitempty"`
}
