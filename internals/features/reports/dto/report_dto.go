// internals/features/reports/dto/report_dto.go
package dto

import "time"

// Filter laporan. Rentang tanggal inklusif (end dihitung sampai akhir hari).
// Class dan StudentIDs difilter di sisi klien-join (relasi many-valued),
// TeacherID dan ViolationID bisa difilter di server.
type ReportFilters struct {
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Class       string  `json:"class"`
	StudentIDs  []int64 `json:"student_ids"`
	ViolationID int64   `json:"violation_id"`
	TeacherID   int64   `json:"teacher_id"`
}

// Satu baris per pasangan (record, siswa), dengan nama sudah di-resolve dan
// poin dijumlahkan dari semua jenis pelanggaran pada record tersebut.
type EnrichedViolationRecord struct {
	RecordID     int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	StudentName  string    `json:"student_name"`
	StudentClass string    `json:"student_class"`
	Violations   string    `json:"violations"`
	TotalPoints  int       `json:"total_points"`
	TeacherName  string    `json:"teacher_name"`
}

type StudentSummary struct {
	StudentName   string `json:"student_name"`
	StudentClass  string `json:"student_class"`
	IncidentCount int    `json:"incident_count"`
	TotalPoints   int    `json:"total_points"`
}

type ReportResult struct {
	Details []EnrichedViolationRecord `json:"details"`
	Summary []StudentSummary          `json:"summary"`
}
