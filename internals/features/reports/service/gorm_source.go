// internals/features/reports/service/gorm_source.go
package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/reports/dto"
	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

type GormDataSource struct {
	DB *gorm.DB
}

func NewGormDataSource(db *gorm.DB) *GormDataSource {
	return &GormDataSource{DB: db}
}

func (g *GormDataSource) RecordsForReport(ctx context.Context, f dto.ReportFilters) ([]recordModel.ViolationRecordModel, error) {
	start, err := time.ParseInLocation("2006-01-02", f.StartDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("start_date tidak valid: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", f.EndDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("end_date tidak valid: %w", err)
	}
	// inklusif sampai akhir hari end_date
	endOfDay := end.Add(24*time.Hour - time.Nanosecond)

	q := g.DB.WithContext(ctx).
		Where("record_timestamp >= ? AND record_timestamp <= ?", start, endOfDay)
	if f.TeacherID > 0 {
		q = q.Where("record_teacher_id = ?", f.TeacherID)
	}
	if f.ViolationID > 0 {
		q = q.Where("? = ANY(record_violation_ids)", f.ViolationID)
	}

	var rows []recordModel.ViolationRecordModel
	if err := q.Order("record_timestamp DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (g *GormDataSource) Students(ctx context.Context) ([]studentModel.StudentModel, error) {
	var rows []studentModel.StudentModel
	return rows, g.DB.WithContext(ctx).Find(&rows).Error
}

func (g *GormDataSource) Teachers(ctx context.Context) ([]teacherModel.TeacherModel, error) {
	var rows []teacherModel.TeacherModel
	return rows, g.DB.WithContext(ctx).Find(&rows).Error
}

func (g *GormDataSource) Violations(ctx context.Context) ([]violationModel.ViolationModel, error) {
	var rows []violationModel.ViolationModel
	return rows, g.DB.WithContext(ctx).Find(&rows).Error
}
