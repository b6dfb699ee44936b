// internals/features/admin/imports/service/classify.go
package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ClassifyInsertError menerjemahkan error insert Postgres menjadi pesan yang
// bisa dipahami petugas tata usaha. Semua pengetahuan tentang kode error dan
// nama constraint dikumpulkan di sini supaya tidak bocor ke service lain.
func ClassifyInsertError(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return uniqueMessage(pgErr.ConstraintName)
		case pgerrcode.NotNullViolation:
			return notNullMessage(pgErr.ColumnName)
		case pgerrcode.CheckViolation:
			return checkMessage(pgErr.ConstraintName)
		}
		if pgErr.Message != "" {
			return "Gagal menyimpan: " + pgErr.Message
		}
	}

	// Fallback string-match untuk driver yang tidak mengekspos *PgError.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return uniqueMessage(msg)
	case strings.Contains(msg, "null value"), strings.Contains(msg, "not-null"):
		return notNullMessage(msg)
	case strings.Contains(msg, "check constraint"):
		return checkMessage(msg)
	}
	return "Gagal menyimpan: " + err.Error()
}

func uniqueMessage(hint string) string {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "nipd"):
		return "NIPD sudah terdaftar"
	case strings.Contains(h, "nisn"):
		return "NISN sudah terdaftar"
	case strings.Contains(h, "nip"):
		return "NIP sudah terdaftar"
	case strings.Contains(h, "email"):
		return "Email sudah terdaftar"
	case strings.Contains(h, "name"):
		return "Nama sudah terdaftar"
	}
	return "Data duplikat dengan baris yang sudah ada"
}

func notNullMessage(hint string) string {
	h := strings.ToLower(hint)
	for _, col := range []struct{ needle, label string }{
		{"nipd", "NIPD"},
		{"nisn", "NISN"},
		{"nip", "NIP"},
		{"email", "Email"},
		{"name", "Nama"},
		{"gender", "Jenis kelamin"},
		{"class", "Kelas"},
		{"points", "Poin"},
	} {
		if strings.Contains(h, col.needle) {
			return col.label + " wajib diisi"
		}
	}
	return "Ada kolom wajib yang kosong"
}

func checkMessage(hint string) string {
	h := strings.ToLower(hint)
	switch {
	case strings.Contains(h, "points"):
		return "Poin harus lebih dari 0"
	case strings.Contains(h, "gender"):
		return "Jenis kelamin harus L atau P"
	}
	return "Nilai tidak memenuhi aturan data"
}
