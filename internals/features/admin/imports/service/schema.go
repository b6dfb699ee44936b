// internals/features/admin/imports/service/schema.go
package service

import (
	"fmt"
	"strconv"
	"strings"

	studentModel "sipelanggaran_backend/internals/features/school/students/model"
)

type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindGender
)

// FieldSpec memetakan satu kolom spreadsheet ke kolom database.
type FieldSpec struct {
	Header   string // judul kolom di template
	Column   string // kolom database tujuan
	Required bool
	Kind     FieldKind
}

// CollectionSchema mendeskripsikan satu jenis data master yang bisa diimpor.
type CollectionSchema struct {
	Name       string // nama koleksi di URL (students/teachers/violations)
	Table      string
	LabelField string // kolom yang dipakai sebagai label baris pada pesan error
	Fields     []FieldSpec
}

var (
	StudentSchema = CollectionSchema{
		Name:       "students",
		Table:      "students",
		LabelField: "student_name",
		Fields: []FieldSpec{
			{Header: "nipd", Column: "student_nipd", Required: true, Kind: KindString},
			{Header: "nisn", Column: "student_nisn", Required: true, Kind: KindString},
			{Header: "name", Column: "student_name", Required: true, Kind: KindString},
			{Header: "gender", Column: "student_gender", Required: true, Kind: KindGender},
			{Header: "class", Column: "student_class", Required: true, Kind: KindString},
		},
	}

	TeacherSchema = CollectionSchema{
		Name:       "teachers",
		Table:      "teachers",
		LabelField: "teacher_name",
		Fields: []FieldSpec{
			{Header: "name", Column: "teacher_name", Required: true, Kind: KindString},
			{Header: "nip", Column: "teacher_nip", Required: true, Kind: KindString},
			{Header: "email", Column: "teacher_email", Required: true, Kind: KindString},
		},
	}

	ViolationSchema = CollectionSchema{
		Name:       "violations",
		Table:      "violations",
		LabelField: "violation_name",
		Fields: []FieldSpec{
			{Header: "name", Column: "violation_name", Required: true, Kind: KindString},
			{Header: "points", Column: "violation_points", Required: true, Kind: KindInt},
		},
	}
)

// SchemaFor mengembalikan schema berdasarkan nama koleksi di URL.
func SchemaFor(name string) (CollectionSchema, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "students":
		return StudentSchema, true
	case "teachers":
		return TeacherSchema, true
	case "violations":
		return ViolationSchema, true
	}
	return CollectionSchema{}, false
}

// CoerceRow memvalidasi dan mengkonversi satu baris spreadsheet (dipetakan per
// header) menjadi map kolom database siap insert. Error yang dikembalikan
// sudah dalam bahasa pengguna.
func (s CollectionSchema) CoerceRow(raw map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		val := strings.TrimSpace(raw[f.Header])
		if val == "" {
			if f.Required {
				return nil, fmt.Errorf("kolom %s wajib diisi", f.Header)
			}
			continue
		}
		switch f.Kind {
		case KindInt:
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("kolom %s harus berupa angka", f.Header)
			}
			out[f.Column] = n
		case KindGender:
			g := studentModel.StudentGender(strings.ToUpper(val))
			if !g.Valid() {
				return nil, fmt.Errorf("kolom %s harus L atau P", f.Header)
			}
			out[f.Column] = string(g)
		default:
			out[f.Column] = val
		}
	}
	return out, nil
}

// RowLabel mengambil nilai yang paling membantu pengguna mengenali baris yang
// gagal, jatuh ke nilai kolom pertama bila kolom label kosong.
func (s CollectionSchema) RowLabel(row map[string]any) string {
	if v, ok := row[s.LabelField].(string); ok && v != "" {
		return v
	}
	if len(s.Fields) > 0 {
		if v, ok := row[s.Fields[0].Column]; ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// Headers mengembalikan judul kolom template sesuai urutan schema.
func (s CollectionSchema) Headers() []string {
	headers := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		headers[i] = f.Header
	}
	return headers
}
