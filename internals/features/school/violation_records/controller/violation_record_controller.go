// internals/features/school/violation_records/controller/violation_record_controller.go
package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/school/violation_records/dto"
	"sipelanggaran_backend/internals/features/school/violation_records/model"
	helper "sipelanggaran_backend/internals/helpers"
	ossHelper "sipelanggaran_backend/internals/helpers/oss"
	authMw "sipelanggaran_backend/internals/middlewares/auth"
)

type ViolationRecordController struct {
	DB *gorm.DB
}

func NewViolationRecordController(db *gorm.DB) *ViolationRecordController {
	return &ViolationRecordController{DB: db}
}

/* ============================================
   POST /api/u/violation-records
   JSON biasa, atau multipart dengan field "photos"
   untuk foto bukti (dinormalisasi lalu diunggah).
   ============================================ */
func (ctrl *ViolationRecordController) Create(c *fiber.Ctx) error {
	body, err := parseCreateRequest(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// Guru pelapor: dari token untuk role teacher, dari body untuk admin.
	teacherID := body.TeacherID
	if role, _ := c.Locals("role").(string); role == authMw.RoleTeacher {
		tid, _ := c.Locals("teacher_id").(int64)
		if tid == 0 {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat identitas guru")
		}
		teacherID = tid
	}
	if teacherID == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id wajib diisi")
	}

	// Foto bukti: kegagalan satu file tidak menggagalkan pencatatan.
	photoURLs, photoErrs := ctrl.uploadPhotos(c)

	rec := model.ViolationRecordModel{
		RecordStudentIDs:   pq.Int64Array(body.StudentIDs),
		RecordViolationIDs: pq.Int64Array(body.ViolationIDs),
		RecordTeacherID:    teacherID,
		RecordPhotoURLs:    datatypes.JSONSlice[string](photoURLs),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		log.Println("[ERROR] Gagal mencatat pelanggaran:", err)
		// foto yang sudah terunggah jadi yatim; bersihkan best-effort
		ctrl.discardPhotos(c.Context(), photoURLs)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat pelanggaran")
	}

	return helper.JsonCreated(c, "Pelanggaran berhasil dicatat", dto.ViolationRecordResponse{
		ID:           rec.RecordID,
		StudentIDs:   body.StudentIDs,
		ViolationIDs: body.ViolationIDs,
		TeacherID:    teacherID,
		Timestamp:    rec.RecordTimestamp.Format(time.RFC3339),
		PhotoURLs:    photoURLs,
		PhotoErrors:  photoErrs,
	})
}

func parseCreateRequest(c *fiber.Ctx) (*dto.CreateViolationRecordRequest, error) {
	var body dto.CreateViolationRecordRequest

	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if strings.Contains(ct, "multipart/form-data") {
		if err := json.Unmarshal([]byte(orEmptyArray(c.FormValue("student_ids"))), &body.StudentIDs); err != nil {
			return nil, fmt.Errorf("student_ids harus berupa array JSON")
		}
		if err := json.Unmarshal([]byte(orEmptyArray(c.FormValue("violation_ids"))), &body.ViolationIDs); err != nil {
			return nil, fmt.Errorf("violation_ids harus berupa array JSON")
		}
		if v := strings.TrimSpace(c.FormValue("teacher_id")); v != "" {
			if err := json.Unmarshal([]byte(v), &body.TeacherID); err != nil {
				return nil, fmt.Errorf("teacher_id tidak valid")
			}
		}
		return &body, nil
	}

	if err := c.BodyParser(&body); err != nil {
		return nil, fmt.Errorf("Invalid request")
	}
	return &body, nil
}

func orEmptyArray(s string) string {
	if strings.TrimSpace(s) == "" {
		return "[]"
	}
	return s
}

func (ctrl *ViolationRecordController) uploadPhotos(c *fiber.Ctx) (urls []string, errs []string) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return nil, nil
	}

	svc, err := ossHelper.NewServiceFromEnv("")
	if err != nil {
		log.Println("[WARN] OSS tidak terkonfigurasi, foto dilewati:", err)
		for _, fh := range files {
			errs = append(errs, fmt.Sprintf("%s: penyimpanan foto tidak tersedia", fh.Filename))
		}
		return nil, errs
	}

	for _, fh := range files {
		url, err := svc.UploadViolationPhoto(c.Context(), fh)
		if err != nil {
			log.Printf("[WARN] Upload foto %s gagal: %v", fh.Filename, err)
			errs = append(errs, fmt.Sprintf("%s: %v", fh.Filename, err))
			continue
		}
		urls = append(urls, url)
	}
	return urls, errs
}

func (ctrl *ViolationRecordController) discardPhotos(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}
	svc, err := ossHelper.NewServiceFromEnv("")
	if err != nil {
		return
	}
	for _, u := range urls {
		if err := svc.DeleteByPublicURL(ctx, u); err != nil {
			log.Println("[WARN] Gagal menghapus foto yatim:", err)
		}
	}
}
