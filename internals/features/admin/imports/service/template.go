// internals/features/admin/imports/service/template.go
package service

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// contoh baris pertama di template supaya format isian langsung terlihat
var templateExamples = map[string][]any{
	"students":   {"12345", "0051234567", "Nama Siswa", "L", "7A"},
	"teachers":   {"Nama Guru", "198001012005011001", "guru@sekolah.sch.id"},
	"violations": {"Terlambat masuk kelas", 10},
}

// GenerateTemplate membuat file XLSX berisi header kolom (plus satu baris
// contoh) untuk koleksi yang diminta.
func GenerateTemplate(schema CollectionSchema) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range schema.Headers() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	if example, ok := templateExamples[schema.Name]; ok {
		for col, v := range example {
			cell, _ := excelize.CoordinatesToCellName(col+1, 2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseSheet membaca sheet pertama sebuah file XLSX menjadi baris-baris yang
// dipetakan per header (baris 1 dianggap header, dicocokkan tanpa peduli
// kapitalisasi).
func ParseSheet(data []byte, schema CollectionSchema) ([]RowInput, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []RowInput{}, nil
	}

	// posisi kolom per header
	pos := map[string]int{}
	for i, h := range rows[0] {
		pos[normalizeHeader(h)] = i
	}

	out := make([]RowInput, 0, len(rows)-1)
	lastFilled := -1
	for _, row := range rows[1:] {
		item := RowInput{}
		empty := true
		for _, field := range schema.Fields {
			idx, ok := pos[field.Header]
			if !ok || idx >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[idx])
			if val != "" {
				empty = false
			}
			item[field.Header] = val
		}
		out = append(out, item)
		if !empty {
			lastFilled = len(out) - 1
		}
	}
	// baris kosong di ekor spreadsheet diabaikan; baris kosong di tengah
	// tetap dilaporkan supaya penomoran baris tidak bergeser
	return out[:lastFilled+1], nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
