// internals/features/reports/service/report_service.go
package service

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sipelanggaran_backend/internals/features/reports/dto"
	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

/* =========================================================
   Sumber data laporan. Prefilter kasar di server (rentang
   tanggal, guru, jenis pelanggaran); join final di memori.
   ========================================================= */

type DataSource interface {
	RecordsForReport(ctx context.Context, f dto.ReportFilters) ([]recordModel.ViolationRecordModel, error)
	Students(ctx context.Context) ([]studentModel.StudentModel, error)
	Teachers(ctx context.Context) ([]teacherModel.TeacherModel, error)
	Violations(ctx context.Context) ([]violationModel.ViolationModel, error)
}

type ReportService struct {
	src DataSource
}

func NewReportService(src DataSource) *ReportService {
	return &ReportService{src: src}
}

func (s *ReportService) Generate(ctx context.Context, f dto.ReportFilters) (*dto.ReportResult, error) {
	records, err := s.src.RecordsForReport(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &dto.ReportResult{
			Details: []dto.EnrichedViolationRecord{},
			Summary: []dto.StudentSummary{},
		}, nil
	}

	// Tiga tabel referensi independen → fetch paralel.
	var (
		students   []studentModel.StudentModel
		teachers   []teacherModel.TeacherModel
		violations []violationModel.ViolationModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		students, err = s.src.Students(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		teachers, err = s.src.Teachers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		violations, err = s.src.Violations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := BuildDetails(records, students, teachers, violations, f)
	return &dto.ReportResult{
		Details: details,
		Summary: Summarize(details),
	}, nil
}

/* =========================================================
   Join di memori + aturan orphan:
   - guru hilang → buang seluruh record
   - jenis pelanggaran hilang → buang jenis itu saja;
     semua hilang → buang record
   - siswa hilang → lewati siswa itu saja
   ========================================================= */

func BuildDetails(
	records []recordModel.ViolationRecordModel,
	students []studentModel.StudentModel,
	teachers []teacherModel.TeacherModel,
	violations []violationModel.ViolationModel,
	f dto.ReportFilters,
) []dto.EnrichedViolationRecord {

	studentByID := make(map[int64]studentModel.StudentModel, len(students))
	for _, s := range students {
		studentByID[s.StudentID] = s
	}
	teacherByID := make(map[int64]teacherModel.TeacherModel, len(teachers))
	for _, t := range teachers {
		teacherByID[t.TeacherID] = t
	}
	violationByID := make(map[int64]violationModel.ViolationModel, len(violations))
	for _, v := range violations {
		violationByID[v.ViolationID] = v
	}

	var allow map[int64]struct{}
	if len(f.StudentIDs) > 0 {
		allow = make(map[int64]struct{}, len(f.StudentIDs))
		for _, id := range f.StudentIDs {
			allow[id] = struct{}{}
		}
	}

	details := []dto.EnrichedViolationRecord{}
	for _, rec := range records {
		teacher, ok := teacherByID[rec.RecordTeacherID]
		if !ok {
			continue // record yatim: guru pelapor sudah tidak ada
		}

		names := make([]string, 0, len(rec.RecordViolationIDs))
		totalPoints := 0
		for _, vid := range rec.RecordViolationIDs {
			v, ok := violationByID[vid]
			if !ok {
				continue
			}
			names = append(names, v.ViolationName)
			totalPoints += v.ViolationPoints
		}
		if len(names) == 0 {
			continue // tidak ada jenis pelanggaran yang masih hidup
		}
		joined := strings.Join(names, ", ")

		for _, sid := range rec.RecordStudentIDs {
			student, ok := studentByID[sid]
			if !ok {
				continue // siswa yatim: lewati siswa ini saja
			}
			if allow != nil {
				if _, ok := allow[sid]; !ok {
					continue
				}
			}
			if f.Class != "" && student.StudentClass != f.Class {
				continue
			}
			details = append(details, dto.EnrichedViolationRecord{
				RecordID:     rec.RecordID,
				Timestamp:    rec.RecordTimestamp,
				StudentName:  student.StudentName,
				StudentClass: student.StudentClass,
				Violations:   joined,
				TotalPoints:  totalPoints,
				TeacherName:  teacher.TeacherName,
			})
		}
	}

	// Terbaru dulu; record_id sebagai tie-break supaya deterministik.
	sort.SliceStable(details, func(i, j int) bool {
		if details[i].Timestamp.Equal(details[j].Timestamp) {
			return details[i].RecordID > details[j].RecordID
		}
		return details[i].Timestamp.After(details[j].Timestamp)
	})
	return details
}

func Summarize(details []dto.EnrichedViolationRecord) []dto.StudentSummary {
	type key struct{ name, class string }
	agg := map[key]*dto.StudentSummary{}
	order := []key{}

	for _, row := range details {
		k := key{row.StudentName, row.StudentClass}
		cur, ok := agg[k]
		if !ok {
			cur = &dto.StudentSummary{StudentName: row.StudentName, StudentClass: row.StudentClass}
			agg[k] = cur
			order = append(order, k)
		}
		cur.IncidentCount++
		cur.TotalPoints += row.TotalPoints
	}

	summary := make([]dto.StudentSummary, 0, len(order))
	for _, k := range order {
		summary = append(summary, *agg[k])
	}
	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].TotalPoints == summary[j].TotalPoints {
			return summary[i].StudentName < summary[j].StudentName
		}
		return summary[i].TotalPoints > summary[j].TotalPoints
	})
	return summary
}
