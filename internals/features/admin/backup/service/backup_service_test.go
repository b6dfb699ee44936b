package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sipelanggaran_backend/internals/features/admin/backup/dto"
	studentModel "sipelanggaran_backend/internals/features/school/students/model"
	recordModel "sipelanggaran_backend/internals/features/school/violation_records/model"
)

// fakeStore merekam tabel yang di-truncate dan baris yang masuk per tabel.
type fakeStore struct {
	truncated   [][]string
	students    [][]studentModel.StudentModel
	failOnChunk int // 1-based, 0 = tidak pernah gagal
	chunkSeen   int
}

func (f *fakeStore) Truncate(ctx context.Context, tables []string) error {
	f.truncated = append(f.truncated, tables)
	return nil
}

func (f *fakeStore) InsertRows(ctx context.Context, table string, rows any) error {
	f.chunkSeen++
	if f.failOnChunk > 0 && f.chunkSeen == f.failOnChunk {
		return errors.New("connection reset")
	}
	if chunk, ok := rows.(*[]studentModel.StudentModel); ok {
		cp := make([]studentModel.StudentModel, len(*chunk))
		copy(cp, *chunk)
		f.students = append(f.students, cp)
	}
	return nil
}

func backupStudents(n int) []studentModel.StudentModel {
	rows := make([]studentModel.StudentModel, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, studentModel.StudentModel{
			StudentID:     int64(i + 1),
			StudentNIPD:   fmt.Sprint(1000 + i),
			StudentNISN:   fmt.Sprint(2000 + i),
			StudentName:   fmt.Sprintf("Siswa %d", i),
			StudentGender: "L",
			StudentClass:  "7A",
		})
	}
	return rows
}

func TestStripStudentsDropsIdentifiers(t *testing.T) {
	in := []studentModel.StudentModel{
		{StudentID: 7, StudentNIPD: "123", StudentName: "Andi", StudentGender: "L", StudentClass: "7A"},
	}

	out := stripStudents(in)

	require.Len(t, out, 1)
	assert.Zero(t, out[0].StudentID)
	assert.Equal(t, "123", out[0].StudentNIPD)
	// slice asal tidak boleh berubah
	assert.Equal(t, int64(7), in[0].StudentID)
}

func TestStripRecordsDropsIDAndTimestamp(t *testing.T) {
	in := []recordModel.ViolationRecordModel{
		{
			RecordID:           3,
			RecordStudentIDs:   pq.Int64Array{1},
			RecordViolationIDs: pq.Int64Array{2},
			RecordTeacherID:    4,
			RecordTimestamp:    time.Date(2026, 1, 5, 8, 0, 0, 0, time.Local),
		},
	}

	out := stripRecords(in)

	require.Len(t, out, 1)
	assert.Zero(t, out[0].RecordID)
	assert.True(t, out[0].RecordTimestamp.IsZero())
	assert.Equal(t, pq.Int64Array{1}, out[0].RecordStudentIDs)
}

// Properti idempotensi restore: semua baris backup masuk kembali, nilai field
// dipertahankan, hanya ID yang dibuang, dan potongan mengikuti batas 1000.
func TestRestoreRoundTripPreservesRowsModuloIDs(t *testing.T) {
	store := &fakeStore{}
	svc := NewBackupServiceWithStore(store)
	payload := dto.BackupPayload{Students: backupStudents(2500)}

	result, err := svc.Restore(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"students"}}, store.truncated)
	assert.Equal(t, 2500, result.RestoredCount)
	assert.Empty(t, result.Failures)

	require.Len(t, store.students, 3)
	assert.Len(t, store.students[0], 1000)
	assert.Len(t, store.students[1], 1000)
	assert.Len(t, store.students[2], 500)

	total := 0
	for _, chunk := range store.students {
		for _, row := range chunk {
			assert.Zero(t, row.StudentID)
			total++
		}
	}
	assert.Equal(t, len(payload.Students), total)
	// nilai field ikut utuh
	assert.Equal(t, "1000", store.students[0][0].StudentNIPD)
	assert.Equal(t, "Siswa 0", store.students[0][0].StudentName)
	assert.Equal(t, "Siswa 2499", store.students[2][499].StudentName)
}

// File backup satu koleksi adalah array polos (hasil ExportCollection) dan
// harus bisa dipulihkan; hanya tabel itu yang dikosongkan.
func TestRestoreCollectionAcceptsBareArray(t *testing.T) {
	store := &fakeStore{}
	svc := NewBackupServiceWithStore(store)

	raw, err := sonic.Marshal(backupStudents(2))
	require.NoError(t, err)

	result, err := svc.RestoreCollection(context.Background(), "students", raw)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"students"}}, store.truncated)
	assert.Equal(t, 2, result.RestoredCount)
	require.Len(t, store.students, 1)
	assert.Equal(t, "1000", store.students[0][0].StudentNIPD)
	assert.Zero(t, store.students[0][0].StudentID)
}

func TestRestoreCollectionRejectsBadInput(t *testing.T) {
	svc := NewBackupServiceWithStore(&fakeStore{})

	_, err := svc.RestoreCollection(context.Background(), "users", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "koleksi tidak dikenal")

	_, err = svc.RestoreCollection(context.Background(), "students", []byte(`{"bukan":"array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bukan array")
}

func TestRestoreReportsFailingChunk(t *testing.T) {
	store := &fakeStore{failOnChunk: 2}
	svc := NewBackupServiceWithStore(store)
	payload := dto.BackupPayload{Students: backupStudents(2500)}

	result, err := svc.Restore(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, 1500, result.RestoredCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "students", result.Failures[0].Collection)
	assert.Equal(t, 1001, result.Failures[0].FromRow)
	assert.Equal(t, 2000, result.Failures[0].ToRow)
	assert.Equal(t, "connection reset", result.Failures[0].Reason)
}

func TestRestoreRejectsEmptyPayload(t *testing.T) {
	svc := NewBackupServiceWithStore(&fakeStore{})

	_, err := svc.Restore(context.Background(), dto.BackupPayload{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tidak berisi koleksi")
}

func TestTruncateTablesRejectsUnknownTable(t *testing.T) {
	store := &fakeStore{}
	svc := NewBackupServiceWithStore(store)

	err := svc.TruncateTables(context.Background(), []string{"users"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabel tidak dikenal")
	assert.Empty(t, store.truncated)
}
