// internals/features/admin/backup/service/backup_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/admin/backup/dto"
	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
	violationModel "sipelanggaran_backend/internals/features/school/violations/model"
)

const backupPageSize = 1000

/* =========================================================
   Store seam: jalur tulis restore (truncate + insert) lewat
   interface supaya pipeline strip+chunk bisa diuji tanpa DB.
   ========================================================= */

type BackupStore interface {
	InsertRows(ctx context.Context, table string, rows any) error
	Truncate(ctx context.Context, tables []string) error
}

type gormBackupStore struct {
	db *gorm.DB
}

func (g *gormBackupStore) InsertRows(ctx context.Context, table string, rows any) error {
	return g.db.WithContext(ctx).Table(table).Create(rows).Error
}

func (g *gormBackupStore) Truncate(ctx context.Context, tables []string) error {
	return g.db.WithContext(ctx).
		Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE").
		Error
}

type BackupService struct {
	DB    *gorm.DB
	store BackupStore
}

func NewBackupService(db *gorm.DB) *BackupService {
	return &BackupService{DB: db, store: &gormBackupStore{db: db}}
}

func NewBackupServiceWithStore(store BackupStore) *BackupService {
	return &BackupService{store: store}
}

/* =========================================================
   Ekspor. Tabel besar dibaca per halaman 1000 baris sampai
   halaman terakhir (halaman pendek) supaya tidak menarik
   seluruh tabel sekali jalan.
   ========================================================= */

func (s *BackupService) Export(ctx context.Context) (*dto.BackupPayload, error) {
	payload := &dto.BackupPayload{
		Students:         []studentModel.StudentModel{},
		Teachers:         []teacherModel.TeacherModel{},
		Violations:       []violationModel.ViolationModel{},
		ViolationRecords: []recordModel.ViolationRecordModel{},
	}

	if err := fetchAll(ctx, s.DB, "student_id", &payload.Students); err != nil {
		return nil, err
	}
	if err := fetchAll(ctx, s.DB, "teacher_id", &payload.Teachers); err != nil {
		return nil, err
	}
	if err := fetchAll(ctx, s.DB, "violation_id", &payload.Violations); err != nil {
		return nil, err
	}
	if err := fetchAll(ctx, s.DB, "record_id", &payload.ViolationRecords); err != nil {
		return nil, err
	}
	return payload, nil
}

// ExportCollection mengekspor satu koleksi saja sebagai array polos.
func (s *BackupService) ExportCollection(ctx context.Context, name string) (any, error) {
	switch name {
	case "students":
		rows := []studentModel.StudentModel{}
		if err := fetchAll(ctx, s.DB, "student_id", &rows); err != nil {
			return nil, err
		}
		return rows, nil
	case "teachers":
		rows := []teacherModel.TeacherModel{}
		if err := fetchAll(ctx, s.DB, "teacher_id", &rows); err != nil {
			return nil, err
		}
		return rows, nil
	case "violations":
		rows := []violationModel.ViolationModel{}
		if err := fetchAll(ctx, s.DB, "violation_id", &rows); err != nil {
			return nil, err
		}
		return rows, nil
	case "violation_records":
		rows := []recordModel.ViolationRecordModel{}
		if err := fetchAll(ctx, s.DB, "record_id", &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, fmt.Errorf("koleksi tidak dikenal: %s", name)
}

func fetchAll[T any](ctx context.Context, db *gorm.DB, orderCol string, dst *[]T) error {
	offset := 0
	for {
		var page []T
		err := db.WithContext(ctx).
			Order(orderCol).
			Limit(backupPageSize).
			Offset(offset).
			Find(&page).Error
		if err != nil {
			return err
		}
		*dst = append(*dst, page...)
		if len(page) < backupPageSize {
			return nil
		}
		offset += backupPageSize
	}
}

/* =========================================================
   Restore. Tabel tujuan dikosongkan dulu dalam SATU statement
   TRUNCATE supaya tidak ada keadaan setengah-kosong, lalu isi
   backup disisipkan per potongan 1000 baris. ID dan timestamp
   lama dibuang; database yang memberi nilai baru.
   ========================================================= */

const restoreChunkSize = 1000

// Restore mengosongkan koleksi yang ADA di file backup (satu statement
// TRUNCATE, atomik), lalu menyisipkan isinya. Koleksi yang tidak ada di file
// tidak disentuh.
func (s *BackupService) Restore(ctx context.Context, payload dto.BackupPayload) (*dto.RestoreResult, error) {
	tables := []string{}
	if payload.Students != nil {
		tables = append(tables, "students")
	}
	if payload.Teachers != nil {
		tables = append(tables, "teachers")
	}
	if payload.Violations != nil {
		tables = append(tables, "violations")
	}
	if payload.ViolationRecords != nil {
		tables = append(tables, "violation_records")
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("file backup tidak berisi koleksi apa pun")
	}
	if err := s.TruncateTables(ctx, tables); err != nil {
		return nil, err
	}

	result := &dto.RestoreResult{Failures: []dto.ChunkFailure{}}

	insertChunks(ctx, s.store, "students", stripStudents(payload.Students), result)
	insertChunks(ctx, s.store, "teachers", stripTeachers(payload.Teachers), result)
	insertChunks(ctx, s.store, "violations", stripViolations(payload.Violations), result)
	insertChunks(ctx, s.store, "violation_records", stripRecords(payload.ViolationRecords), result)

	return result, nil
}

// RestoreCollection memulihkan satu koleksi dari file backup berbentuk array
// polos (hasil ExportCollection). Hanya tabel itu yang di-truncate.
func (s *BackupService) RestoreCollection(ctx context.Context, name string, raw []byte) (*dto.RestoreResult, error) {
	payload := dto.BackupPayload{}
	var err error
	switch name {
	case "students":
		err = sonic.Unmarshal(raw, &payload.Students)
	case "teachers":
		err = sonic.Unmarshal(raw, &payload.Teachers)
	case "violations":
		err = sonic.Unmarshal(raw, &payload.Violations)
	case "violation_records":
		err = sonic.Unmarshal(raw, &payload.ViolationRecords)
	default:
		return nil, fmt.Errorf("koleksi tidak dikenal: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("isi backup bukan array %s yang valid: %w", name, err)
	}
	return s.Restore(ctx, payload)
}

var knownTables = map[string]bool{
	"students":          true,
	"teachers":          true,
	"violations":        true,
	"violation_records": true,
}

// TruncateTables mengosongkan beberapa tabel sekaligus dalam satu statement,
// dipakai restore dan endpoint hapus-semua. Nama tabel diperiksa terhadap
// daftar putih sebelum masuk ke SQL.
func (s *BackupService) TruncateTables(ctx context.Context, tables []string) error {
	for _, t := range tables {
		if !knownTables[t] {
			return fmt.Errorf("tabel tidak dikenal: %s", t)
		}
	}
	return s.store.Truncate(ctx, tables)
}

func insertChunks[T any](ctx context.Context, store BackupStore, table string, rows []T, result *dto.RestoreResult) {
	for start := 0; start < len(rows); start += restoreChunkSize {
		end := start + restoreChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		if err := store.InsertRows(ctx, table, &chunk); err != nil {
			result.Failures = append(result.Failures, dto.ChunkFailure{
				Collection: table,
				FromRow:    start + 1,
				ToRow:      end,
				Reason:     err.Error(),
			})
			continue
		}
		result.RestoredCount += len(chunk)
	}
}

/* =========================================================
   Pembersih: ID dan timestamp dari file backup tidak boleh
   ikut masuk; nilainya diserahkan ke database.
   ========================================================= */

func stripStudents(in []studentModel.StudentModel) []studentModel.StudentModel {
	out := make([]studentModel.StudentModel, len(in))
	for i, row := range in {
		row.StudentID = 0
		out[i] = row
	}
	return out
}

func stripTeachers(in []teacherModel.TeacherModel) []teacherModel.TeacherModel {
	out := make([]teacherModel.TeacherModel, len(in))
	for i, row := range in {
		row.TeacherID = 0
		out[i] = row
	}
	return out
}

func stripViolations(in []violationModel.ViolationModel) []violationModel.ViolationModel {
	out := make([]violationModel.ViolationModel, len(in))
	for i, row := range in {
		row.ViolationID = 0
		out[i] = row
	}
	return out
}

func stripRecords(in []recordModel.ViolationRecordModel) []recordModel.ViolationRecordModel {
	out := make([]recordModel.ViolationRecordModel, len(in))
	for i, row := range in {
		row.RecordID = 0
		row.RecordTimestamp = time.Time{}
		out[i] = row
	}
	return out
}
