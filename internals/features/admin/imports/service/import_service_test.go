package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInserter menggagalkan insert berdasarkan nilai kolom tertentu.
type fakeInserter struct {
	failWhen func(row map[string]any) error
	inserted []map[string]any
}

func (f *fakeInserter) InsertRows(ctx context.Context, table string, rows []map[string]any) error {
	if f.failWhen != nil {
		for _, row := range rows {
			if err := f.failWhen(row); err != nil {
				return err
			}
		}
	}
	f.inserted = append(f.inserted, rows...)
	return nil
}

func (f *fakeInserter) InsertRow(ctx context.Context, table string, row map[string]any) error {
	if f.failWhen != nil {
		if err := f.failWhen(row); err != nil {
			return err
		}
	}
	f.inserted = append(f.inserted, row)
	return nil
}

func studentRow(nipd, name string) RowInput {
	return RowInput{
		"nipd":   nipd,
		"nisn":   "00" + nipd,
		"name":   name,
		"gender": "L",
		"class":  "7A",
	}
}

func TestRunAllRowsSucceed(t *testing.T) {
	ins := &fakeInserter{}
	rows := []RowInput{studentRow("1", "Andi"), studentRow("2", "Budi")}

	result := NewImportService(ins).Run(context.Background(), StudentSchema, rows)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Empty(t, result.Failures)
	assert.Len(t, ins.inserted, 2)
}

func TestRunFallsBackRowByRowOnChunkFailure(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_students_student_nipd"}
	ins := &fakeInserter{
		failWhen: func(row map[string]any) error {
			if row["student_nipd"] == "2" {
				return dup
			}
			return nil
		},
	}
	rows := []RowInput{
		studentRow("1", "Andi"),
		studentRow("2", "Budi"),
		studentRow("3", "Citra"),
	}

	result := NewImportService(ins).Run(context.Background(), StudentSchema, rows)

	assert.Equal(t, 2, result.SuccessCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, 3, result.Failures[0].Row) // header = baris 1, data mulai baris 2
	assert.Equal(t, "Budi", result.Failures[0].Label)
	assert.Equal(t, "NIPD sudah terdaftar", result.Failures[0].Reason)
}

func TestRunLocalValidationFailuresCountTowardTotal(t *testing.T) {
	ins := &fakeInserter{}
	rows := []RowInput{
		studentRow("1", "Andi"),
		{"nipd": "2", "nisn": "002", "name": "Budi", "gender": "X", "class": "7A"},
		{"nipd": "", "nisn": "003", "name": "Citra", "gender": "P", "class": "7A"},
	}

	result := NewImportService(ins).Run(context.Background(), StudentSchema, rows)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, len(rows), result.SuccessCount+len(result.Failures))
	assert.Equal(t, 3, result.Failures[0].Row)
	assert.Equal(t, "kolom gender harus L atau P", result.Failures[0].Reason)
	assert.Equal(t, 4, result.Failures[1].Row)
	assert.Equal(t, "kolom nipd wajib diisi", result.Failures[1].Reason)
}

func TestRunInvariantHoldsAcrossChunks(t *testing.T) {
	// lebih dari satu chunk, sebagian baris gagal di DB
	failing := map[any]bool{"100": true, "300": true}
	ins := &fakeInserter{
		failWhen: func(row map[string]any) error {
			if failing[row["student_nipd"]] {
				return errors.New(`duplicate key value violates unique constraint "idx_students_student_nipd"`)
			}
			return nil
		},
	}
	rows := make([]RowInput, 0, 600)
	for i := 0; i < 600; i++ {
		rows = append(rows, studentRow(fmt.Sprint(i), fmt.Sprintf("Siswa %d", i)))
	}

	result := NewImportService(ins).Run(context.Background(), StudentSchema, rows)

	assert.Equal(t, len(rows), result.SuccessCount+len(result.Failures))
	require.Len(t, result.Failures, 2)
	assert.Equal(t, 598, result.SuccessCount)
	assert.Equal(t, "NIPD sudah terdaftar", result.Failures[0].Reason)
}

func TestClassifyInsertErrorVariants(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unique nisn",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_students_student_nisn"},
			want: "NISN sudah terdaftar",
		},
		{
			name: "unique email",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "idx_teachers_teacher_email"},
			want: "Email sudah terdaftar",
		},
		{
			name: "not null",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "student_class"},
			want: "Kelas wajib diisi",
		},
		{
			name: "check points",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_violations_violation_points"},
			want: "Poin harus lebih dari 0",
		},
		{
			name: "string fallback",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "idx_teachers_teacher_nip"`),
			want: "NIP sudah terdaftar",
		},
		{
			name: "generic",
			err:  errors.New("connection reset"),
			want: "Gagal menyimpan: connection reset",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyInsertError(tc.err))
		})
	}
}

func TestParseSheetRoundTrip(t *testing.T) {
	tmpl, err := GenerateTemplate(StudentSchema)
	require.NoError(t, err)

	rows, err := ParseSheet(tmpl, StudentSchema)
	require.NoError(t, err)
	require.Len(t, rows, 1) // baris contoh di template
	assert.Equal(t, "Nama Siswa", rows[0]["name"])
	assert.Equal(t, "L", rows[0]["gender"])
}

func TestCoerceRowConvertsTypes(t *testing.T) {
	row, err := ViolationSchema.CoerceRow(RowInput{"name": "Terlambat", "points": "15"})
	require.NoError(t, err)
	assert.Equal(t, "Terlambat", row["violation_name"])
	assert.Equal(t, 15, row["violation_points"])

	_, err = ViolationSchema.CoerceRow(RowInput{"name": "Terlambat", "points": "abc"})
	assert.EqualError(t, err, "kolom points harus berupa angka")
}
