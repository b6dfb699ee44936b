// internals/features/users/auth/dto/auth_dto.go
package dto

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TeacherID   int64  `json:"teacher_id,omitempty"`
}
