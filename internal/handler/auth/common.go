package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blinkfit/internal/model/auth"
	"blinkfit/internal/pkg/httpx"
	"blinkfit/internal/service"
)

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Role          string       `json:"role"`
	EmailVerified bool         `json:"email_verified"`
	Subscribed    bool         `json:"subscribed"`
	Profile       *DoctorInfo  `json:"profile,omitempty"`
	LastLoginAt   string       `json:"last_login_at,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
}

// DoctorInfo 医生资料（用于响应）
type DoctorInfo struct {
	Specialization   string `json:"specialization,omitempty"`
	LicenseNumber    string `json:"license_number,omitempty"`
	ExperienceYears  int    `json:"experience_years,omitempty"`
	Hospital         string `json:"hospital,omitempty"`
	IsVerifiedDoctor bool   `json:"is_verified_doctor"`
	VerifiedAt       string `json:"verified_at,omitempty"`
}

// toUserInfo 将User实体转换为UserInfo（所有API共用）
func toUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		Subscribed:    user.Subscribed,
	}

	if user.Profile != nil {
		info.Profile = &DoctorInfo{
			Specialization:   user.Profile.Specialization,
			LicenseNumber:    user.Profile.LicenseNumber,
			ExperienceYears:  user.Profile.ExperienceYears,
			Hospital:         user.Profile.Hospital,
			IsVerifiedDoctor: user.Profile.IsVerifiedDoctor,
		}
		if user.Profile.VerifiedAt != nil {
			info.Profile.VerifiedAt = user.Profile.VerifiedAt.Format(time.RFC3339)
		}
	}

	if user.LastLoginAt != nil {
		info.LastLoginAt = user.LastLoginAt.Format(time.RFC3339)
	}
	info.CreatedAt = user.CreatedAt.Format(time.RFC3339)

	return info
}

// fail 将service错误映射为HTTP响应（auth包共用）
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.FailValidation(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrExpiredToken):
		httpx.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.Fail(c, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrNotFound):
		httpx.Fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrNotDoctor):
		httpx.Fail(c, http.StatusBadRequest, "User is not a doctor account")
	default:
		httpx.Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
