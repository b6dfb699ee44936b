// internals/features/school/teachers/controller/teacher_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/school/teachers/dto"
	"sipelanggaran_backend/internals/features/school/teachers/model"
	helper "sipelanggaran_backend/internals/helpers"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

/* ============================================
   POST /api/a/teachers
   ============================================ */
func (ctrl *TeacherController) Create(c *fiber.Ctx) error {
	var body dto.CreateTeacherRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	rec := model.TeacherModel{
		TeacherName:  strings.TrimSpace(body.Name),
		TeacherNIP:   strings.TrimSpace(body.NIP),
		TeacherEmail: strings.ToLower(strings.TrimSpace(body.Email)),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		log.Println("[ERROR] Gagal menambahkan guru:", err)
		return helper.JsonError(c, fiber.StatusConflict, "Gagal menambahkan guru, NIP/email mungkin sudah terdaftar")
	}
	return helper.JsonCreated(c, "Guru berhasil ditambahkan", rec)
}

/* ============================================
   GET /api/u/teachers
   ============================================ */
func (ctrl *TeacherController) List(c *fiber.Ctx) error {
	var rows []model.TeacherModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("teacher_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data guru")
	}
	return helper.JsonOK(c, "Daftar guru ditemukan", rows)
}
