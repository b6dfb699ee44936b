// internals/features/admin/imports/service/import_service.go
package service

import (
	"context"

	"gorm.io/gorm"
)

const importChunkSize = 250

// Nomor baris pada laporan kegagalan mengikuti tampilan spreadsheet:
// baris 1 adalah header, data mulai baris 2.
const headerRowOffset = 2

type ImportFailure struct {
	Row    int    `json:"row"`
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	SuccessCount int             `json:"success_count"`
	Failures     []ImportFailure `json:"failures"`
}

// BulkInserter menyisipkan baris ke satu tabel. Implementasi produksi memakai
// GORM; test memakai fake.
type BulkInserter interface {
	InsertRows(ctx context.Context, table string, rows []map[string]any) error
	InsertRow(ctx context.Context, table string, row map[string]any) error
}

type ImportService struct {
	inserter BulkInserter
}

func NewImportService(inserter BulkInserter) *ImportService {
	return &ImportService{inserter: inserter}
}

// Run mengimpor baris per potongan. Potongan yang gagal diulang baris demi
// baris supaya satu baris rusak tidak ikut menggagalkan baris lain, dan
// setiap kegagalan dilaporkan dengan nomor baris spreadsheet-nya.
// Selalu berlaku: SuccessCount + len(Failures) == len(rows).
func (s *ImportService) Run(ctx context.Context, schema CollectionSchema, rows []RowInput) *ImportResult {
	result := &ImportResult{Failures: []ImportFailure{}}

	// Validasi lokal dulu; baris yang sudah jelas rusak tidak perlu ke DB.
	type pending struct {
		index int
		data  map[string]any
	}
	valid := make([]pending, 0, len(rows))
	for i, raw := range rows {
		data, err := schema.CoerceRow(raw)
		if err != nil {
			result.Failures = append(result.Failures, ImportFailure{
				Row:    i + headerRowOffset,
				Label:  labelFromRaw(schema, raw),
				Reason: err.Error(),
			})
			continue
		}
		valid = append(valid, pending{index: i, data: data})
	}

	for start := 0; start < len(valid); start += importChunkSize {
		end := start + importChunkSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[start:end]

		batch := make([]map[string]any, len(chunk))
		for i, p := range chunk {
			batch[i] = p.data
		}
		if err := s.inserter.InsertRows(ctx, schema.Table, batch); err == nil {
			result.SuccessCount += len(chunk)
			continue
		}

		// Potongan gagal: ulang satu-satu untuk memisahkan baris bermasalah.
		for _, p := range chunk {
			if err := s.inserter.InsertRow(ctx, schema.Table, p.data); err != nil {
				result.Failures = append(result.Failures, ImportFailure{
					Row:    p.index + headerRowOffset,
					Label:  schema.RowLabel(p.data),
					Reason: ClassifyInsertError(err),
				})
				continue
			}
			result.SuccessCount++
		}
	}
	return result
}

// RowInput adalah satu baris spreadsheet yang sudah dipetakan per header.
type RowInput = map[string]string

func labelFromRaw(schema CollectionSchema, raw RowInput) string {
	for _, f := range schema.Fields {
		if f.Column == schema.LabelField {
			return raw[f.Header]
		}
	}
	if len(schema.Fields) > 0 {
		return raw[schema.Fields[0].Header]
	}
	return ""
}

/* =========================================================
   Implementasi GORM
   ========================================================= */

type GormInserter struct {
	DB *gorm.DB
}

func NewGormInserter(db *gorm.DB) *GormInserter {
	return &GormInserter{DB: db}
}

func (g *GormInserter) InsertRows(ctx context.Context, table string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	return g.DB.WithContext(ctx).Table(table).Create(&rows).Error
}

func (g *GormInserter) InsertRow(ctx context.Context, table string, row map[string]any) error {
	return g.DB.WithContext(ctx).Table(table).Create(&row).Error
}
