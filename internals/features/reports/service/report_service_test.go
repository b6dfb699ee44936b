package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipelanggaran_backend/internals/features/reports/dto"
	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

type fakeSource struct {
	records    []recordModel.ViolationRecordModel
	students   []studentModel.StudentModel
	teachers   []teacherModel.TeacherModel
	violations []violationModel.ViolationModel
}

func (f *fakeSource) RecordsForReport(ctx context.Context, _ dto.ReportFilters) ([]recordModel.ViolationRecordModel, error) {
	return f.records, nil
}
func (f *fakeSource) Students(ctx context.Context) ([]studentModel.StudentModel, error) {
	return f.students, nil
}
func (f *fakeSource) Teachers(ctx context.Context) ([]teacherModel.TeacherModel, error) {
	return f.teachers, nil
}
func (f *fakeSource) Violations(ctx context.Context) ([]violationModel.ViolationModel, error) {
	return f.violations, nil
}

func baseFixture() *fakeSource {
	return &fakeSource{
		students: []studentModel.StudentModel{
			{StudentID: 1, StudentName: "Andi", StudentClass: "7A"},
			{StudentID: 2, StudentName: "Budi", StudentClass: "7B"},
			{StudentID: 3, StudentName: "Citra", StudentClass: "7A"},
		},
		teachers: []teacherModel.TeacherModel{
			{TeacherID: 10, TeacherName: "Pak Joko"},
			{TeacherID: 11, TeacherName: "Bu Sari"},
		},
		violations: []violationModel.ViolationModel{
			{ViolationID: 100, ViolationName: "Terlambat", ViolationPoints: 10},
			{ViolationID: 101, ViolationName: "Tidak Berseragam", ViolationPoints: 20},
		},
	}
}

func filters() dto.ReportFilters {
	return dto.ReportFilters{StartDate: "2026-01-01", EndDate: "2026-01-31"}
}

func TestGenerateFansOutStudentsAndSumsPoints(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1, 2},
			RecordViolationIDs: pq.Int64Array{100, 101},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	result, err := NewReportService(src).Generate(context.Background(), filters())
	require.NoError(t, err)
	require.Len(t, result.Details, 2)

	for _, row := range result.Details {
		assert.Equal(t, "Terlambat, Tidak Berseragam", row.Violations)
		assert.Equal(t, 30, row.TotalPoints)
		assert.Equal(t, "Pak Joko", row.TeacherName)
	}
	assert.Equal(t, "Andi", result.Details[0].StudentName)
	assert.Equal(t, "Budi", result.Details[1].StudentName)
}

func TestGenerateEmptyRecordsShortCircuits(t *testing.T) {
	src := baseFixture()

	result, err := NewReportService(src).Generate(context.Background(), filters())
	require.NoError(t, err)
	assert.Empty(t, result.Details)
	assert.Empty(t, result.Summary)
}

func TestBuildDetailsDropsRecordWhenTeacherMissing(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1},
			RecordViolationIDs: pq.Int64Array{100},
			RecordTeacherID:    999,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	details := BuildDetails(src.records, src.students, src.teachers, src.violations, filters())
	assert.Empty(t, details)
}

func TestBuildDetailsDropsMissingViolationTypeOnly(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1},
			RecordViolationIDs: pq.Int64Array{100, 999},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	details := BuildDetails(src.records, src.students, src.teachers, src.violations, filters())
	require.Len(t, details, 1)
	assert.Equal(t, "Terlambat", details[0].Violations)
	assert.Equal(t, 10, details[0].TotalPoints)
}

func TestBuildDetailsDropsRecordWhenAllViolationTypesMissing(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1},
			RecordViolationIDs: pq.Int64Array{998, 999},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	details := BuildDetails(src.records, src.students, src.teachers, src.violations, filters())
	assert.Empty(t, details)
}

func TestBuildDetailsSkipsMissingStudentOnly(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1, 999},
			RecordViolationIDs: pq.Int64Array{100},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	details := BuildDetails(src.records, src.students, src.teachers, src.violations, filters())
	require.Len(t, details, 1)
	assert.Equal(t, "Andi", details[0].StudentName)
}

func TestBuildDetailsClassAndStudentFilters(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1, 2, 3},
			RecordViolationIDs: pq.Int64Array{100},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	f := filters()
	f.Class = "7A"
	details := BuildDetails(src.records, src.students, src.teachers, src.violations, f)
	require.Len(t, details, 2)
	assert.Equal(t, "Andi", details[0].StudentName)
	assert.Equal(t, "Citra", details[1].StudentName)

	f = filters()
	f.StudentIDs = []int64{2}
	details = BuildDetails(src.records, src.students, src.teachers, src.violations, f)
	require.Len(t, details, 1)
	assert.Equal(t, "Budi", details[0].StudentName)
}

func TestBuildDetailsSortsNewestFirst(t *testing.T) {
	src := baseFixture()
	src.records = []recordModel.ViolationRecordModel{
		{
			RecordID:           1,
			RecordStudentIDs:   pq.Int64Array{1},
			RecordViolationIDs: pq.Int64Array{100},
			RecordTeacherID:    10,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
		{
			RecordID:           2,
			RecordStudentIDs:   pq.Int64Array{2},
			RecordViolationIDs: pq.Int64Array{101},
			RecordTeacherID:    11,
			RecordTimestamp:    time.Date(2026, 1, 10, 8, 0, 0, 0, time.Local),
		},
	}

	details := BuildDetails(src.records, src.students, src.teachers, src.violations, filters())
	require.Len(t, details, 2)
	assert.Equal(t, int64(2), details[0].RecordID)
	assert.Equal(t, int64(1), details[1].RecordID)
}

func TestSummarizeGroupsAndRanksByPoints(t *testing.T) {
	ts := time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local)
	details := []dto.EnrichedViolationRecord{
		{StudentName: "Andi", StudentClass: "7A", TotalPoints: 10, Timestamp: ts},
		{StudentName: "Budi", StudentClass: "7B", TotalPoints: 20, Timestamp: ts},
		{StudentName: "Andi", StudentClass: "7A", TotalPoints: 25, Timestamp: ts},
		{StudentName: "Andi", StudentClass: "7B", TotalPoints: 5, Timestamp: ts},
	}

	summary := Summarize(details)
	require.Len(t, summary, 3)

	// Andi 7A dan Andi 7B adalah dua entri berbeda (kunci nama+kelas).
	assert.Equal(t, "Andi", summary[0].StudentName)
	assert.Equal(t, "7A", summary[0].StudentClass)
	assert.Equal(t, 2, summary[0].IncidentCount)
	assert.Equal(t, 35, summary[0].TotalPoints)

	assert.Equal(t, "Budi", summary[1].StudentName)
	assert.Equal(t, 20, summary[1].TotalPoints)

	assert.Equal(t, "Andi", summary[2].StudentName)
	assert.Equal(t, "7B", summary[2].StudentClass)
	assert.Equal(t, 5, summary[2].TotalPoints)
}

func TestGenerateExcelProducesWorkbook(t *testing.T) {
	result := &dto.ReportResult{
		Details: []dto.EnrichedViolationRecord{
			{
				RecordID:     1,
				Timestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
				StudentName:  "Andi",
				StudentClass: "7A",
				Violations:   "Terlambat",
				TotalPoints:  10,
				TeacherName:  "Pak Joko",
			},
		},
		Summary: []dto.StudentSummary{
			{StudentName: "Andi", StudentClass: "7A", IncidentCount: 1, TotalPoints: 10},
		},
	}

	data, err := GenerateExcel(result)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX adalah arsip ZIP.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestGeneratePDFProducesDocument(t *testing.T) {
	result := &dto.ReportResult{
		Details: []dto.EnrichedViolationRecord{
			{
				RecordID:     1,
				Timestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
				StudentName:  "Andi",
				StudentClass: "7A",
				Violations:   "Terlambat",
				TotalPoints:  10,
				TeacherName:  "Pak Joko",
			},
		},
		Summary: []dto.StudentSummary{
			{StudentName: "Andi", StudentClass: "7A", IncidentCount: 1, TotalPoints: 10},
		},
	}

	data, err := GeneratePDF(result)
	require.NoError(t, err)
	assert.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}
