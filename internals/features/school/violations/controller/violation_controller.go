// internals/features/school/violations/controller/violation_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sipelanggaran_backend/internals/features/school/violations/dto"
	"sipelanggaran_backend/internals/features/school/violations/model"
	helper "sipelanggaran_backend/internals/helpers"
)

type ViolationController struct {
	DB *gorm.DB
}

func NewViolationController(db *gorm.DB) *ViolationController {
	return &ViolationController{DB: db}
}

/* ============================================
   POST /api/a/violations
   ============================================ */
func (ctrl *ViolationController) Create(c *fiber.Ctx) error {
	var body dto.CreateViolationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	rec := model.ViolationModel{
		ViolationName:   strings.TrimSpace(body.Name),
		ViolationPoints: body.Points,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&rec).Error; err != nil {
		log.Println("[ERROR] Gagal menambahkan jenis pelanggaran:", err)
		return helper.JsonError(c, fiber.StatusConflict, "Gagal menambahkan jenis pelanggaran, nama mungkin sudah terdaftar")
	}
	return helper.JsonCreated(c, "Jenis pelanggaran berhasil ditambahkan", rec)
}

/* ============================================
   GET /api/u/violations
   ============================================ */
func (ctrl *ViolationController) List(c *fiber.Ctx) error {
	var rows []model.ViolationModel
	if err := ctrl.DB.WithContext(c.Context()).
		Order("violation_points DESC, violation_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jenis pelanggaran")
	}
	return helper.JsonOK(c, "Daftar jenis pelanggaran ditemukan", rows)
}
