// internals/features/school/students/controller/student_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/school/students/dto"
	"sipelanggaran_backend/internals/features/school/students/model"
	helper "sipelanggaran_backend/internals/helpers"
)

const (
	searchMinQueryLen = 2
	searchMaxResults  = 10
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ============================================
   POST /api/a/students
   ============================================ */
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var body dto.CreateStudentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	rec := model.StudentModel{
		StudentNIPD:   strings.TrimSpace(body.NIPD),
		StudentNISN:   strings.TrimSpace(body.NISN),
		StudentName:   strings.TrimSpace(body.Name),
		StudentGender: model.StudentGender(body.Gender),
		StudentClass:  strings.TrimSpace(body.Class),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		log.Println("[ERROR] Gagal menambahkan siswa:", err)
		return helper.JsonError(c, fiber.StatusConflict, "Gagal menambahkan siswa, NIPD/NISN mungkin sudah terdaftar")
	}
	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", rec)
}

/* ============================================
   GET /api/u/students
   ============================================ */
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.Context()).Model(&model.StudentModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	var rows []model.StudentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("student_class ASC, student_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	return helper.JsonList(c, "Daftar siswa ditemukan", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* ============================================
   GET /api/u/students/search?q=
   Best-effort: error DB → hasil kosong, bukan 500
   ============================================ */
func (ctrl *StudentController) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < searchMinQueryLen {
		return helper.JsonOK(c, "ok", []model.StudentModel{})
	}

	like := "%" + q + "%"
	var rows []model.StudentModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("student_name ILIKE ? OR student_nipd ILIKE ? OR student_nisn ILIKE ?", like, like, like).
		Order("student_name ASC").
		Limit(searchMaxResults).
		Find(&rows).Error; err != nil {
		log.Println("[WARN] Pencarian siswa gagal:", err)
		return helper.JsonOK(c, "ok", []model.StudentModel{})
	}

	return helper.JsonOK(c, "ok", rows)
}

/* ============================================
   GET /api/u/students/classes
   Daftar kelas unik untuk dropdown filter laporan
   ============================================ */
func (ctrl *StudentController) Classes(c *fiber.Ctx) error {
	var classes []string
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&model.StudentModel{}).
		Distinct("student_class").
		Order("student_class ASC").
		Pluck("student_class", &classes).Error; err != nil {
		log.Println("[WARN] Gagal mengambil daftar kelas:", err)
		return helper.JsonOK(c, "ok", []string{})
	}
	return helper.JsonOK(c, "ok", classes)
}
