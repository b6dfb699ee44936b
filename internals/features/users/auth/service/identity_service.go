// internals/features/users/auth/service/identity_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"sipelanggaran_backend/internals/configs"
	teacherModel "sipelanggaran_backend/internals/features/school/teachers/model"
	authMw "sipelanggaran_backend/internals/middlewares/auth"
)

// ErrUnknownIdentity: email tidak cocok dengan admin maupun direktori guru.
// Pemanggil harus memperlakukan ini sebagai "belum login".
var ErrUnknownIdentity = errors.New("email tidak terdaftar sebagai admin atau guru")

type Identity struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	TeacherID int64  `json:"teacher_id,omitempty"`
}

// TeacherFinder memisahkan lookup direktori guru dari aturan pemetaan peran
// supaya aturannya bisa diuji tanpa database.
type TeacherFinder interface {
	FindTeacherByEmail(ctx context.Context, email string) (*teacherModel.TeacherModel, error)
}

// ResolveIdentity memetakan email hasil login ke peran aplikasi:
// email admin (tanpa peduli kapitalisasi) jadi admin, email yang ada di
// direktori guru jadi teacher, selain itu ditolak.
func ResolveIdentity(ctx context.Context, finder TeacherFinder, email string) (*Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, ErrUnknownIdentity
	}

	if normalized == strings.ToLower(configs.AdminEmail) {
		return &Identity{Role: authMw.RoleAdmin, Name: "Admin", Email: normalized}, nil
	}

	teacher, err := finder.FindTeacherByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, ErrUnknownIdentity
	}
	return &Identity{
		Role:      authMw.RoleTeacher,
		Name:      teacher.TeacherName,
		Email:     normalized,
		TeacherID: teacher.TeacherID,
	}, nil
}

/* =========================================================
   Implementasi GORM
   ========================================================= */

type GormTeacherFinder struct {
	DB *gorm.DB
}

func NewGormTeacherFinder(db *gorm.DB) *GormTeacherFinder {
	return &GormTeacherFinder{DB: db}
}

func (g *GormTeacherFinder) FindTeacherByEmail(ctx context.Context, email string) (*teacherModel.TeacherModel, error) {
	var teacher teacherModel.TeacherModel
	err := g.DB.WithContext(ctx).
		Where("LOWER(teacher_email) = ?", email).
		First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}
